package testsupport

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFixture(t *testing.T) {
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "test.txt")
	testContent := []byte("test fixture content")

	if err := os.WriteFile(testFile, testContent, 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	result := LoadFixture(t, testFile)
	if string(result) != string(testContent) {
		t.Errorf("expected %q, got %q", testContent, result)
	}
}

func TestLoadFixtureJSON(t *testing.T) {
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "test.json")
	testData := map[string]interface{}{
		"name":  "ada",
		"email": "a@x.com",
	}

	jsonData, err := json.Marshal(testData)
	if err != nil {
		t.Fatalf("failed to marshal test data: %v", err)
	}

	if err := os.WriteFile(testFile, jsonData, 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	var result map[string]interface{}
	LoadFixtureJSON(t, testFile, &result)

	if result["name"] != "ada" {
		t.Errorf("expected name=ada, got %v", result["name"])
	}
	if result["email"] != "a@x.com" {
		t.Errorf("expected email=a@x.com, got %v", result["email"])
	}
}

func TestCompareWithGolden_CreatesWhenMissing(t *testing.T) {
	tmpDir := t.TempDir()
	goldenFile := filepath.Join(tmpDir, "missing.golden")

	CompareWithGolden(t, goldenFile, []byte("fresh output"))

	created, err := os.ReadFile(goldenFile)
	if err != nil {
		t.Fatalf("golden file was not created: %v", err)
	}
	if string(created) != "fresh output" {
		t.Errorf("expected golden file to hold actual data, got %q", created)
	}
}

func TestCompareWithGolden_Matches(t *testing.T) {
	tmpDir := t.TempDir()
	goldenFile := filepath.Join(tmpDir, "match.golden")

	if err := os.WriteFile(goldenFile, []byte("same"), 0644); err != nil {
		t.Fatalf("failed to create golden file: %v", err)
	}

	CompareWithGolden(t, goldenFile, []byte("same"))
}

func TestFixturePath(t *testing.T) {
	got := FixturePath("employees.json")
	want := filepath.Join("testdata", "employees.json")
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestGoldenPath(t *testing.T) {
	got := GoldenPath("snapshot.golden")
	want := filepath.Join("testdata", "golden", "snapshot.golden")
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
