package testutil

import (
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Header fixtures live in testdata/headers as <name>.hex and <name>.json.
const headerDir = "headers"

// HeaderFixture is one captured header with its expected decoded fields.
type HeaderFixture struct {
	Name      string
	ByteOrder string
}

// HeaderFixtures lists the captured headers shipped in testdata. Names ending
// in _little were produced with little-endian pixel fields.
func HeaderFixtures() []HeaderFixture {
	names := []string{"kepler_big", "config7_little", "empty_with_payload"}
	out := make([]HeaderFixture, 0, len(names))
	for _, name := range names {
		order := "big"
		if strings.HasSuffix(name, "_little") {
			order = "little"
		}
		out = append(out, HeaderFixture{Name: name, ByteOrder: order})
	}
	return out
}

// LoadHeaderHex returns the hex text of a header fixture.
func LoadHeaderHex(t *testing.T, name string) string {
	t.Helper()
	return LoadHex(t, filepath.Join(headerDir, name+".hex"))
}

// LoadHeaderFields decodes the expected field map of a header fixture.
func LoadHeaderFields(t *testing.T, name string) map[string]any {
	t.Helper()
	var fields map[string]any
	LoadJSON(t, filepath.Join(headerDir, name+".json"), &fields)
	return fields
}

// LoadHexBytes reads a hex fixture and decodes it, ignoring whitespace.
func LoadHexBytes(t *testing.T, rel string) []byte {
	t.Helper()
	clean := strings.Join(strings.Fields(LoadHex(t, rel)), "")
	data, err := hex.DecodeString(clean)
	if err != nil {
		t.Fatalf("decode hex %s: %v", rel, err)
	}
	return data
}

// LoadJSON loads a JSON fixture from testdata relative to the repo root.
func LoadJSON(t *testing.T, rel string, v any) {
	t.Helper()
	data := readTestdata(t, rel)
	if err := json.Unmarshal(data, v); err != nil {
		t.Fatalf("decode %s: %v", rel, err)
	}
}

// LoadHex returns a trimmed hex string from testdata relative path.
func LoadHex(t *testing.T, rel string) string {
	t.Helper()
	return strings.TrimSpace(string(readTestdata(t, rel)))
}

func readTestdata(t *testing.T, rel string) []byte {
	t.Helper()
	for dir := "."; len(dir) < 16; dir = filepath.Join("..", dir) {
		if data, err := os.ReadFile(filepath.Join(dir, "testdata", rel)); err == nil {
			return data
		}
	}
	t.Fatalf("unable to locate testdata file %s", rel)
	return nil
}
