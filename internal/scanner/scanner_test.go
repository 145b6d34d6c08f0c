package scanner

import (
	"bytes"
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gubarz/sloc/internal/registry"
)

var cRules = registry.RuleSet{
	LineMarkers: []string{"//"},
	BlockPairs:  []registry.BlockPair{{Start: "/*", End: "*/"}},
}

var pyRules = registry.RuleSet{
	LineMarkers: []string{"#"},
	BlockPairs: []registry.BlockPair{
		{Start: `"""`, End: `"""`},
		{Start: "'''", End: "'''"},
	},
}

func testRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	reg, err := registry.Parse(strings.NewReader("c h\n//\n/* */\n\npy\n#\n\"\"\" \"\"\" ''' '''\n\ns\n#\n\n"))
	if err != nil {
		t.Fatalf("failed to build registry: %v", err)
	}
	return reg
}

func kinds(rules registry.RuleSet, lines ...string) []LineKind {
	c := NewClassifier(rules)
	out := make([]LineKind, len(lines))
	for i, line := range lines {
		out[i] = c.Classify(line)
	}
	return out
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		rules registry.RuleSet
		lines []string
		want  []LineKind
	}{
		{
			name:  "block comment across lines",
			rules: cRules,
			lines: []string{"int main() {", "// comment", "/* block", "still block */", "return 0;", "}"},
			want:  []LineKind{Code, Comment, Comment, Comment, Code, Code},
		},
		{
			name:  "same line open and close after code",
			rules: cRules,
			lines: []string{`printf("x"); /* c */`},
			want:  []LineKind{Comment},
		},
		{
			name:  "same line block then code",
			rules: cRules,
			lines: []string{"/* x */", "int y;"},
			want:  []LineKind{Comment, Code},
		},
		{
			name:  "leading block with trailing code opens the block",
			rules: cRules,
			lines: []string{"/* x */ doStuff();", "int y;", "end */"},
			want:  []LineKind{Comment, Comment, Comment},
		},
		{
			name:  "marker after code without close is code",
			rules: cRules,
			lines: []string{"x = 1; // trailing", "y = 2; /* opens", "z = 3;"},
			want:  []LineKind{Code, Code, Code},
		},
		{
			name:  "indented markers and blank lines",
			rules: cRules,
			lines: []string{"", "   ", "\t// note", "    /*", "\t *", "     */   ", "\tcall();"},
			want:  []LineKind{Blank, Blank, Comment, Comment, Comment, Comment, Code},
		},
		{
			name:  "nested start inside block is not tracked",
			rules: cRules,
			lines: []string{"/* outer", "/* inner */", "after();"},
			want:  []LineKind{Comment, Comment, Code},
		},
		{
			name:  "blank line inside block counts as comment",
			rules: cRules,
			lines: []string{"/*", "", "*/", ""},
			want:  []LineKind{Comment, Comment, Comment, Blank},
		},
		{
			name:  "identical start and end markers close on the same line",
			rules: pyRules,
			lines: []string{`"""`, "Module docs.", `"""`, "import os", `"""one line"""`, "x = 1"},
			want:  []LineKind{Comment, Code, Comment, Code, Comment, Code},
		},
		{
			name:  "second block pair is honoured",
			rules: pyRules,
			lines: []string{"'''", "text", "'''", "# hash"},
			want:  []LineKind{Comment, Code, Comment, Comment},
		},
		{
			name:  "overlapping start and end markers",
			rules: cRules,
			lines: []string{"/*/", "int x;"},
			want:  []LineKind{Comment, Code},
		},
		{
			name:  "docstring opened with text stays open",
			rules: pyRules,
			lines: []string{`"""Module docs.`, "more", `end"""`, "x = 1"},
			want:  []LineKind{Comment, Comment, Comment, Code},
		},
		{
			name:  "no rules means every non-blank line is code",
			rules: registry.RuleSet{},
			lines: []string{"# not a comment", "", "/* nope */"},
			want:  []LineKind{Code, Blank, Code},
		},
		{
			name:  "windows line endings",
			rules: cRules,
			lines: []string{"/* a\r", "b */\r", "c;\r", "\r"},
			want:  []LineKind{Comment, Comment, Code, Blank},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := kinds(tt.rules, tt.lines...)
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("line %d %q: expected %s, got %s", i+1, tt.lines[i], tt.want[i], got[i])
				}
			}
		})
	}
}

func TestScanCounts(t *testing.T) {
	src := "int main() {\n// comment\n/* block\nstill block */\nreturn 0;\n}\n"
	res, err := Scan(strings.NewReader(src), cRules)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if res.Total != 6 || res.Code != 3 || res.Comment != 3 || res.Blank != 0 {
		t.Fatalf("expected total=6 code=3 comment=3 blank=0, got %+v", res)
	}
	if res.Unterminated {
		t.Error("expected the block to be terminated")
	}
}

func TestScanInvariants(t *testing.T) {
	inputs := []string{
		"",
		"\n",
		"   \n\t\n\n",
		"no newline at end",
		"/* never closed\nint x;\n\n// y\n",
		"a\n\n/* b */\n// c\n  d\n",
		strings.Repeat("x = 1;\n/*\n*/\n\n", 50),
	}
	for _, in := range inputs {
		first, err := Scan(strings.NewReader(in), cRules)
		if err != nil {
			t.Fatalf("Scan(%q) failed: %v", in, err)
		}
		if first.Total != first.Code+first.Blank+first.Comment {
			t.Errorf("Scan(%q): total %d != %d+%d+%d", in, first.Total, first.Code, first.Blank, first.Comment)
		}
		second, _ := Scan(strings.NewReader(in), cRules)
		if first != second {
			t.Errorf("Scan(%q) not repeatable: %+v vs %+v", in, first, second)
		}
	}
}

func TestScanWhitespaceOnly(t *testing.T) {
	res, err := Scan(strings.NewReader(" \n\t\n\n   \t \n"), cRules)
	if err != nil {
		t.Fatal(err)
	}
	if res.Total != 4 || res.Blank != 4 || res.Code != 0 || res.Comment != 0 {
		t.Fatalf("expected 4 blank lines, got %+v", res)
	}
}

func TestScanUnterminatedBlock(t *testing.T) {
	res, err := Scan(strings.NewReader("int a;\n/* open\nint b;\n\n"), cRules)
	if err != nil {
		t.Fatal(err)
	}
	if res.Code != 1 || res.Comment != 3 || res.Blank != 0 {
		t.Fatalf("expected code=1 comment=3, got %+v", res)
	}
	if !res.Unterminated {
		t.Error("expected Unterminated to be set")
	}
}

func TestScanLoneMarkerLines(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		rules   registry.RuleSet
		code    int
		comment int
	}{
		{"triple quote", "\"\"\"\nx = 1\ny = 2\n", pyRules, 2, 1},
		{"overlapping c markers", "/*/\nint x;\n", cRules, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Scan(strings.NewReader(tt.src), tt.rules)
			if err != nil {
				t.Fatal(err)
			}
			if res.Code != tt.code || res.Comment != tt.comment || res.Unterminated {
				t.Errorf("expected code=%d comment=%d and a closed block, got %+v", tt.code, tt.comment, res)
			}
		})
	}
}

func TestScanLongLine(t *testing.T) {
	long := strings.Repeat("x", 20*1024*1024)
	res, err := Scan(strings.NewReader("// head\n"+long+"\n\n"), cRules)
	if err != nil {
		t.Fatalf("expected long lines to scan, got %v", err)
	}
	if res.Total != 3 || res.Code != 1 || res.Comment != 1 || res.Blank != 1 {
		t.Errorf("unexpected counts: %+v", res)
	}
}

func TestScanLineEndings(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		total int
		blank int
	}{
		{"empty", "", 0, 0},
		{"single newline", "\n", 1, 1},
		{"no trailing newline", "a\nb", 2, 0},
		{"crlf", "a\r\n\r\nb\r\n", 3, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Scan(strings.NewReader(tt.src), cRules)
			if err != nil {
				t.Fatal(err)
			}
			if res.Total != tt.total || res.Blank != tt.blank {
				t.Errorf("expected %d lines (%d blank), got %+v", tt.total, tt.blank, res)
			}
		})
	}
}

func TestExtension(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"main.c", "c"},
		{"dir/file.tar.gz", "gz"},
		{"Makefile", ""},
		{"trailing.", ""},
		{".bashrc", "bashrc"},
		{"some.dir/noext", ""},
		{"/abs/path/x.PY", "PY"},
	}
	for _, tt := range tests {
		if got := Extension(tt.path); got != tt.want {
			t.Errorf("Extension(%q): expected %q, got %q", tt.path, tt.want, got)
		}
	}
}

func TestScanFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.c")
	if err := os.WriteFile(path, []byte("int main() {\n\n  // hi\n  return 0;\n}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	sc := New(testRegistry(t))
	res, err := sc.ScanFile(path)
	if err != nil {
		t.Fatalf("ScanFile failed: %v", err)
	}
	if res.Path != path || res.Extension != "c" {
		t.Errorf("unexpected identity: %+v", res)
	}
	if res.Total != 5 || res.Code != 3 || res.Blank != 1 || res.Comment != 1 {
		t.Errorf("unexpected counts: %+v", res)
	}
}

func TestScanFileUnsupported(t *testing.T) {
	sc := New(testRegistry(t))
	_, err := sc.ScanFile("notes.txt")
	var unsupported *UnsupportedExtensionError
	if !errors.As(err, &unsupported) {
		t.Fatalf("expected *UnsupportedExtensionError, got %v", err)
	}
	if unsupported.Extension != "txt" {
		t.Errorf("expected extension txt, got %q", unsupported.Extension)
	}
	if err.Error() != `".txt" is not a supported file extension` {
		t.Errorf("unexpected message: %q", err.Error())
	}
}

func TestScanFileMissing(t *testing.T) {
	sc := New(testRegistry(t))
	_, err := sc.ScanFile(filepath.Join(t.TempDir(), "gone.c"))
	var access *FileAccessError
	if !errors.As(err, &access) {
		t.Fatalf("expected *FileAccessError, got %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected the error to wrap os.ErrNotExist, got %v", err)
	}
}

func TestScanFileDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "src.c")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	sc := New(testRegistry(t))
	_, err := sc.ScanFile(dir)
	var access *FileAccessError
	if !errors.As(err, &access) {
		t.Fatalf("expected *FileAccessError for a directory, got %v", err)
	}
}

func TestScanFileLogsUnterminatedBlock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "open.c")
	if err := os.WriteFile(path, []byte("/* never closed\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	sc := New(testRegistry(t), WithLogger(log.New(&buf, "", 0)))
	if _, err := sc.ScanFile(path); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "ends inside a block comment") {
		t.Fatalf("expected a warning, got %q", buf.String())
	}
}

func TestLineKindString(t *testing.T) {
	if Code.String() != "code" || Blank.String() != "blank" || Comment.String() != "comment" {
		t.Fatal("unexpected LineKind names")
	}
}
