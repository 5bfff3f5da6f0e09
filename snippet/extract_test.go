package snippet

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name         string
		content      string
		lang         Language
		want         []string
		wantUnclosed bool
	}{
		{
			name:    "empty document",
			content: "",
			lang:    LanguagePython,
			want:    []string{},
		},
		{
			name:    "no fenced blocks",
			content: "just prose\nand more prose\n",
			lang:    LanguagePython,
			want:    []string{},
		},
		{
			name:    "two python blocks",
			content: "intro\n```python\nprint(1)\n```\nmid\n```python\nYOUR_API_KEY\n```\n",
			lang:    LanguagePython,
			want:    []string{"print(1)", "YOUR_API_KEY"},
		},
		{
			name:    "other language ignored",
			content: "```typescript\nconsole.log(1)\n```\n```python\nprint(2)\n```\n",
			lang:    LanguagePython,
			want:    []string{"print(2)"},
		},
		{
			name:    "tag is case sensitive",
			content: "```Python\nprint(1)\n```\n",
			lang:    LanguagePython,
			want:    []string{},
		},
		{
			name:    "no aliases",
			content: "```ts\nlet a = 1\n```\n```py\nx = 1\n```\n",
			lang:    LanguageTypeScript,
			want:    []string{},
		},
		{
			name:    "markers trimmed, body verbatim",
			content: "  ```typescript  \n    const a = 1;\n\tconst b = 2;  \n\t```\n",
			lang:    LanguageTypeScript,
			want:    []string{"    const a = 1;\n\tconst b = 2;  "},
		},
		{
			name:    "blank lines preserved",
			content: "```python\n\nx = 1\n\n```\n",
			lang:    LanguagePython,
			want:    []string{"\nx = 1\n"},
		},
		{
			name:    "empty block",
			content: "```python\n```\n",
			lang:    LanguagePython,
			want:    []string{""},
		},
		{
			name:    "stray closing fence outside block",
			content: "```\nnot code\n```\n```python\nx = 1\n```\n",
			lang:    LanguagePython,
			want:    []string{"x = 1"},
		},
		{
			name:    "nested opening marker does not restart block",
			content: "```python\na = 1\n```python\nb = 2\n```\n",
			lang:    LanguagePython,
			want:    []string{"a = 1\nb = 2"},
		},
		{
			name:         "unclosed block discarded",
			content:      "```python\nprint(1)\n",
			lang:         LanguagePython,
			want:         []string{},
			wantUnclosed: true,
		},
		{
			name:         "complete block kept before unclosed one",
			content:      "```python\na\n```\n```python\nb\n",
			lang:         LanguagePython,
			want:         []string{"a"},
			wantUnclosed: true,
		},
		{
			name:    "carriage returns stay on body lines",
			content: "```python\r\nx = 1\r\n```\r\n",
			lang:    LanguagePython,
			want:    []string{"x = 1\r"},
		},
		{
			name:    "unsupported language yields nothing",
			content: "```\nx\n```\n",
			lang:    Language("ruby"),
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := Parse(tt.content, tt.lang)
			if diff := cmp.Diff(tt.want, doc.Snippets); diff != "" {
				t.Errorf("Parse() snippets mismatch (-want +got):\n%s", diff)
			}
			if doc.Unclosed != tt.wantUnclosed {
				t.Errorf("Parse() Unclosed = %v, want %v", doc.Unclosed, tt.wantUnclosed)
			}
		})
	}
}

func TestExtract_WarnsOnceForUnclosedBlock(t *testing.T) {
	logger := &recordingLogger{}
	content := "```python\na\n```\n```python\nb\n```python\nc\n"

	got := Extract(content, LanguagePython, logger)

	if diff := cmp.Diff([]string{"a"}, got); diff != "" {
		t.Errorf("Extract() mismatch (-want +got):\n%s", diff)
	}
	if len(logger.warns) != 1 {
		t.Errorf("Extract() emitted %d warnings, want 1", len(logger.warns))
	}
}

func TestExtract_NoWarningForClosedBlocks(t *testing.T) {
	logger := &recordingLogger{}

	_ = Extract("```python\na\n```\n", LanguagePython, logger)

	if len(logger.warns) != 0 {
		t.Errorf("Extract() emitted %d warnings, want 0", len(logger.warns))
	}
}

func TestExtract_NilLogger(t *testing.T) {
	got := Extract("```python\na\n", LanguagePython, nil)
	if len(got) != 0 {
		t.Errorf("Extract() = %v, want empty", got)
	}
}

func TestExtractFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cohere.txt")
	content := "# Cohere\n```typescript\nconst key = \"YOUR_API_KEY\";\n```\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	logger := &recordingLogger{}
	got := ExtractFile(path, LanguageTypeScript, logger)

	want := []string{`const key = "YOUR_API_KEY";`}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ExtractFile() mismatch (-want +got):\n%s", diff)
	}
	if len(logger.errors) != 0 {
		t.Errorf("ExtractFile() logged errors: %v", logger.errors)
	}
}

func TestExtractFile_MissingFile(t *testing.T) {
	logger := &recordingLogger{}

	got := ExtractFile(filepath.Join(t.TempDir(), "missing.txt"), LanguagePython, logger)

	if got == nil || len(got) != 0 {
		t.Errorf("ExtractFile() = %#v, want empty non-nil slice", got)
	}
	if len(logger.errors) != 1 {
		t.Errorf("ExtractFile() logged %d errors, want 1", len(logger.errors))
	}
}

func TestParseLanguage(t *testing.T) {
	tests := []struct {
		in      string
		want    Language
		wantErr bool
	}{
		{in: "", want: LanguageTypeScript},
		{in: "typescript", want: LanguageTypeScript},
		{in: "python", want: LanguagePython},
		{in: "Python", wantErr: true},
		{in: "go", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseLanguage(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseLanguage(%q) error = nil, want error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseLanguage(%q) error = %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseLanguage(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLanguage_Fence(t *testing.T) {
	if got := LanguagePython.Fence(); got != "```python" {
		t.Errorf("Fence() = %q, want %q", got, "```python")
	}
	if got := LanguageTypeScript.Fence(); got != "```typescript" {
		t.Errorf("Fence() = %q, want %q", got, "```typescript")
	}
}
