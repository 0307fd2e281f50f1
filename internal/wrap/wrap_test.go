package wrap

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gotest.tools/v3/golden"

	"github.com/phobologic/argwrap/internal/lang"
	"github.com/phobologic/argwrap/internal/model"
	"github.com/phobologic/argwrap/internal/parse"
	"github.com/phobologic/argwrap/internal/token"
)

func tokenize(t *testing.T, src string) *token.Stream {
	t.Helper()
	s, err := parse.Tokenize(context.Background(), lang.Languages["php"], []byte(src))
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if s.String() != src {
		t.Fatalf("token stream does not round-trip: %q", s.String())
	}
	return s
}

func format(t *testing.T, src string, opts Options) string {
	t.Helper()
	return Format(tokenize(t, src), opts).Stream.String()
}

// stream builds a token stream by hand, alternating kinds and texts.
func stream(parts ...any) *token.Stream {
	var toks []token.Token
	for i := 0; i+1 < len(parts); i += 2 {
		toks = append(toks, token.New(parts[i].(token.Kind), parts[i+1].(string)))
	}
	return token.NewStream(toks)
}

func TestScenarios(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions()
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "named arguments over threshold",
			src:  "<?php\n    f(a: 1, b: 2, c: 3, d: 4);\n",
			want: "<?php\n    f(\n        a: 1,\n        b: 2,\n        c: 3,\n        d: 4,\n    );\n",
		},
		{
			name: "positional arguments only",
			src:  "<?php\nf(1, 2, 3, 4);\n",
			want: "<?php\nf(1, 2, 3, 4);\n",
		},
		{
			name: "below threshold",
			src:  "<?php\nf(a: 1, b: 2);\n",
			want: "<?php\nf(a: 1, b: 2);\n",
		},
		{
			name: "already multi-line",
			src:  "<?php\nf(\n    a: 1, b: 2,\n    c: 3, d: 4, e: 5\n);\n",
			want: "<?php\nf(\n    a: 1, b: 2,\n    c: 3, d: 4, e: 5\n);\n",
		},
		{
			name: "one named argument is enough",
			src:  "<?php\nf($a, $b, $c, d: 4);\n",
			want: "<?php\nf(\n    $a,\n    $b,\n    $c,\n    d: 4,\n);\n",
		},
		{
			name: "ternary is not a named argument",
			src:  "<?php\nf($a ? B : C, 2, 3, 4);\n",
			want: "<?php\nf($a ? B : C, 2, 3, 4);\n",
		},
		{
			name: "comment kept with its argument",
			src:  "<?php\nf(a: 1, /* two */ b: 2, c: 3, d: 4);\n",
			want: "<?php\nf(\n    a: 1,\n    /* two */ b: 2,\n    c: 3,\n    d: 4,\n);\n",
		},
		{
			name: "empty call",
			src:  "<?php\nf();\n",
			want: "<?php\nf();\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := format(t, tt.src, opts); got != tt.want {
				t.Errorf("Format() mismatch (-want +got):\n%s", cmp.Diff(tt.want, got))
			}
		})
	}
}

func TestFormatGolden(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"scenarios", "nested"} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			src, err := os.ReadFile(filepath.Join("testdata", name+".php"))
			if err != nil {
				t.Fatal(err)
			}
			golden.Assert(t, format(t, string(src), DefaultOptions()), name+".golden")
		})
	}
}

func TestThresholdBoundary(t *testing.T) {
	t.Parallel()

	opts := Options{MaxArguments: 3, TrailingComma: true}

	if got := format(t, "<?php\nf(1, 2, 3);\n", opts); got != "<?php\nf(1, 2, 3);\n" {
		t.Errorf("call with exactly MaxArguments arguments was reformatted:\n%s", got)
	}
	want := "<?php\nf(\n    1,\n    2,\n    3,\n    4,\n);\n"
	if got := format(t, "<?php\nf(1, 2, 3, 4);\n", opts); got != want {
		t.Errorf("call with MaxArguments+1 arguments:\n got %q\nwant %q", got, want)
	}
}

func TestTrailingCommaOption(t *testing.T) {
	t.Parallel()

	opts := Options{MaxArguments: 1, TrailingComma: false}
	want := "<?php\nf(\n    1,\n    2\n);\n"
	if got := format(t, "<?php\nf(1, 2,);\n", opts); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestIndentOverride(t *testing.T) {
	t.Parallel()

	opts := Options{MaxArguments: 1, Indent: "  "}
	want := "<?php\nif ($x) {\n    f(\n      1,\n      2\n    );\n}\n"
	if got := format(t, "<?php\nif ($x) {\n    f(1, 2);\n}\n", opts); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestDeclarationsAndVariablesIgnored(t *testing.T) {
	t.Parallel()

	opts := Options{MaxArguments: 1}
	srcs := []string{
		"<?php\nfunction make(int $a, int $b) {}\n",
		"<?php\nfunction &make(int $a, int $b) {}\n",
		"<?php\n$f = fn($a, $b) => $a;\n",
		"<?php\n$fn(1, 2);\n",
		"<?php\nif ($a && $b) {}\n",
	}
	for _, src := range srcs {
		if got := format(t, src, opts); got != src {
			t.Errorf("unexpected rewrite of %q:\n%s", src, got)
		}
	}
}

func TestTernaryIsNotNamed(t *testing.T) {
	t.Parallel()

	src := "<?php\nf(X ? a : b, 2, 3, 4);\n"
	if got := format(t, src, DefaultOptions()); got != src {
		t.Errorf("ternary argument treated as named:\n%s", got)
	}
}

func TestFormatChanges(t *testing.T) {
	t.Parallel()

	src := "<?php\nfoo(a: 1, b: 2, c: 3, d: 4);\n$x->bar(a: 1, b: 2, c: 3, d: 4);\nBaz::qux(a: 1, b: 2, c: 3, d: 4, e: 5);\n"
	res := Format(tokenize(t, src), DefaultOptions())

	want := []model.Change{
		{Rule: model.WrapArguments, Line: 2, Callee: "foo", Kind: model.Function, Arguments: 4},
		{Rule: model.WrapArguments, Line: 3, Callee: "->bar", Kind: model.InstanceMethod, Arguments: 4},
		{Rule: model.WrapArguments, Line: 4, Callee: "Baz::qux", Kind: model.StaticCall, Arguments: 5},
	}
	if diff := cmp.Diff(want, res.Changes); diff != "" {
		t.Errorf("Changes mismatch (-want +got):\n%s", diff)
	}
}

func TestLocate(t *testing.T) {
	t.Parallel()

	src := "<?php\nfunction foo($a) {}\nfoo(1);\n$o->bar(2);\n$o?->baz(3);\nA\\B::qux(4);\n$fn(5);\nif ($x) {}\nnew Thing(6);\n"
	s := tokenize(t, src)

	type site struct {
		Kind   model.CallKind
		Callee string
	}
	var got []site
	for _, cs := range Locate(s) {
		if cs.Open >= cs.Close || !s.At(cs.Close).Equals(")") {
			t.Errorf("bad parens for %s: %d/%d", cs.Callee, cs.Open, cs.Close)
		}
		got = append(got, site{cs.Kind, cs.Callee})
	}
	want := []site{
		{model.Function, "Thing"},
		{model.StaticCall, `A\B::qux`},
		{model.InstanceMethod, "->baz"},
		{model.InstanceMethod, "->bar"},
		{model.Function, "foo"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Locate mismatch (-want +got):\n%s", diff)
	}
}

func TestLocateUnbalanced(t *testing.T) {
	t.Parallel()

	s := stream(
		token.Identifier, "f", token.Punct, "(", token.Literal, "1",
		token.Punct, "]", token.Punct, ")",
	)
	if sites := Locate(s); len(sites) != 0 {
		t.Errorf("expected unmatched call to be dropped, got %+v", sites)
	}
}

func TestSegment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		src  string
		want []string
	}{
		{"<?php f();", nil},
		{"<?php f( );", nil},
		{"<?php f(1);", []string{"1"}},
		{"<?php f(1, 2,);", []string{"1", "2"}},
		{"<?php f( $a , g($b, $c) , [1, 2], fn() => [3, 4]);", []string{"$a", "g($b, $c)", "[1, 2]", "fn() => [3, 4]"}},
		{"<?php f(a: 1, ...$rest);", []string{"a: 1", "...$rest"}},
		{"<?php f('a,b', \"c, $d\");", []string{"'a,b'", "\"c, $d\""}},
	}

	for _, tt := range tests {
		s := tokenize(t, tt.src)
		sites := Locate(s)
		site := sites[len(sites)-1]
		var got []string
		for _, a := range Segment(s, site.Open, site.Close) {
			got = append(got, token.Join(s.Slice(a.Start, a.End)))
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("Segment(%q) mismatch (-want +got):\n%s", tt.src, diff)
		}
	}
}

func TestNamedKey(t *testing.T) {
	t.Parallel()

	ws := token.Whitespace
	tests := []struct {
		name  string
		s     *token.Stream
		key   string
		named bool
	}{
		{
			name:  "identifier",
			s:     stream(token.Identifier, "a", token.Punct, ":", ws, " ", token.Literal, "1"),
			key:   "a",
			named: true,
		},
		{
			name:  "reserved word",
			s:     stream(token.Keyword, "class", token.Punct, ":", ws, " ", token.Identifier, "Foo"),
			key:   "class",
			named: true,
		},
		{
			name:  "leading comment",
			s:     stream(token.Comment, "/* x */", ws, " ", token.Identifier, "a", token.Punct, ":", token.Literal, "1"),
			key:   "a",
			named: true,
		},
		{
			name: "ternary",
			s: stream(token.Variable, "$a", ws, " ", token.Punct, "?", ws, " ", token.Identifier, "B",
				ws, " ", token.Punct, ":", ws, " ", token.Identifier, "C"),
		},
		{
			name: "ternary on a constant",
			s: stream(token.Identifier, "X", ws, " ", token.Punct, "?", ws, " ", token.Identifier, "a",
				ws, " ", token.Punct, ":", ws, " ", token.Identifier, "b"),
		},
		{
			name: "scope resolution",
			s:    stream(token.Identifier, "Foo", token.Punct, "::", token.Identifier, "BAR"),
		},
		{
			name: "split scope resolution",
			s:    stream(token.Identifier, "Foo", token.Punct, ":", token.Punct, ":", token.Identifier, "BAR"),
		},
		{
			name: "colon inside nested call",
			s: stream(token.Identifier, "g", token.Punct, "(", token.Identifier, "a", token.Punct, ":",
				token.Literal, "1", token.Punct, ")"),
		},
		{
			name: "operator keyword",
			s:    stream(token.Keyword, "new", ws, " ", token.Identifier, "Foo"),
		},
		{
			name: "variable",
			s:    stream(token.Variable, "$a"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			key, named := NamedKey(tt.s, 0, tt.s.Len())
			if key != tt.key || named != tt.named {
				t.Errorf("NamedKey() = %q, %v; want %q, %v", key, named, tt.key, tt.named)
			}
		})
	}
}

func TestInferUnit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want string
	}{
		{"no indentation", "<?php\nfoo();\n", "    "},
		{"two spaces", "<?php\nif ($a) {\n  if ($b) {\n    foo();\n  }\n}\n", "  "},
		{"four spaces", "<?php\nclass A\n{\n    public function b()\n    {\n        c();\n    }\n}\n", "    "},
		{"tabs", "<?php\nif ($a) {\n\tfoo();\n}\n", "\t"},
		{"tabs win over spaces", "<?php\nif ($a) {\n  foo();\n\tbar();\n}\n", "\t"},
	}

	for _, tt := range tests {
		if got := InferUnit(tokenize(t, tt.src)); got != tt.want {
			t.Errorf("%s: InferUnit() = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestBaseIndent(t *testing.T) {
	t.Parallel()

	s := tokenize(t, "<?php\nfoo();\n    $x\n        ->bar();\n")
	sites := Locate(s)
	indents := map[string]string{}
	for _, site := range sites {
		indents[site.Callee] = BaseIndent(s, site.Name)
	}
	want := map[string]string{"foo": "", "->bar": "        "}
	if diff := cmp.Diff(want, indents); diff != "" {
		t.Errorf("BaseIndent mismatch (-want +got):\n%s", diff)
	}

	first := stream(token.Identifier, "f", token.Punct, "(", token.Punct, ")")
	if got := BaseIndent(first, 0); got != "" {
		t.Errorf("BaseIndent at start of file = %q", got)
	}
}

var propertySources = []string{
	"<?php\nf(a: 1, b: 2, c: 3, d: 4);\n",
	"<?php\nf(1, 2, 3, 4, 5);\n",
	"<?php\n$this->x(a: g(1, 2, 3, b: 4), c: [1, 2, 3, 4], d: 5, e: fn($z) => h(y: 1, z: 2, w: 3, v: 4));\n",
	"<?php\nclass A {\n  function b() {\n    return C::d(e: 1, f: 2, g: 3, h: 4,);\n  }\n}\n",
	"<?php\n$a = [1, 2, 3, 4];\n$b = $c ? d(x: 1) : e(1, 2, 3, 4);\n",
}

var propertyOptions = []Options{
	DefaultOptions(),
	{MaxArguments: 0},
	{MaxArguments: 2, TrailingComma: true},
	{MaxArguments: 1, NamedArgumentsOnly: true, Indent: "\t"},
}

func TestIdempotence(t *testing.T) {
	t.Parallel()

	for _, src := range propertySources {
		for _, opts := range propertyOptions {
			once := format(t, src, opts)
			twice := format(t, once, opts)
			if once != twice {
				t.Errorf("Format not idempotent for %q with %+v:\nonce:\n%s\ntwice:\n%s", src, opts, once, twice)
			}
		}
	}
}

// meaningful returns the texts of every token that is neither whitespace nor
// a comma.
func meaningful(s *token.Stream) []string {
	var out []string
	for _, tok := range s.Tokens() {
		if tok.Kind == token.Whitespace || tok.Equals(",") {
			continue
		}
		out = append(out, tok.Text)
	}
	return out
}

func TestContentPreservation(t *testing.T) {
	t.Parallel()

	for _, src := range propertySources {
		for _, opts := range propertyOptions {
			in := tokenize(t, src)
			out := Format(in, opts).Stream
			if diff := cmp.Diff(meaningful(in), meaningful(out)); diff != "" {
				t.Errorf("content changed for %q with %+v (-in +out):\n%s", src, opts, diff)
			}
		}
	}
}

func TestArgumentCountInvariance(t *testing.T) {
	t.Parallel()

	counts := func(s *token.Stream) []int {
		var out []int
		for _, site := range Locate(s) {
			out = append(out, len(Segment(s, site.Open, site.Close)))
		}
		return out
	}

	for _, src := range propertySources {
		for _, opts := range propertyOptions {
			in := tokenize(t, src)
			out := tokenize(t, Format(in, opts).Stream.String())
			if diff := cmp.Diff(counts(in), counts(out)); diff != "" {
				t.Errorf("argument counts changed for %q with %+v (-in +out):\n%s", src, opts, diff)
			}
		}
	}
}

func TestFormatDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	src := "<?php\nf(a: 1, b: 2, c: 3, d: 4);\n"
	in := tokenize(t, src)
	Format(in, DefaultOptions())
	if in.String() != src {
		t.Errorf("input stream modified: %q", in.String())
	}
}
