package format

import (
	"testing"

	"ssc/internal/source"
)

func TestSource(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "canonical spacing",
			in:   "f:(i64)->i64\nf( x )=x\n",
			want: "f : (i64) -> i64\nf(x) = x\n",
		},
		{
			name: "params and curried types",
			in:   "k :  ( i64 )->( f64 )  ->i64\nk(a)=(b)->a",
			want: "k : (i64) -> (f64) -> i64\nk(a) = (b) -> a\n",
		},
		{
			name: "multi-parameter arrow",
			in:   "g : (i64,i64) -> i64\ng(a,b)=b\n",
			want: "g : (i64, i64) -> i64\ng(a, b) = b\n",
		},
		{
			name: "comments between items are kept",
			in:   "// header\n\ny=5 // five\n\n\nz = y\n\n\n",
			want: "// header\n\ny = 5 // five\n\n\nz = y\n",
		},
		{
			name: "comment inside an item is copied verbatim",
			in:   "f(x) = // body\n  x\n",
			want: "f(x) = // body\n  x\n",
		},
		{
			name: "literals are normalised",
			in:   "n = 007\n",
			want: "n = 7\n",
		},
		{
			name: "empty",
			in:   "\n\n",
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, bag, err := Source("m.ss", []byte(tt.in), 10)
			if err != nil {
				t.Fatal(err)
			}
			if bag.HasErrors() {
				t.Fatalf("unexpected parse errors")
			}
			if string(out) != tt.want {
				t.Errorf("got %q, want %q", out, tt.want)
			}
		})
	}
}

func TestSourceParseError(t *testing.T) {
	out, bag, err := Source("m.ss", []byte("f : (i64\n"), 10)
	if err != nil {
		t.Fatal(err)
	}
	if out != nil || !bag.HasErrors() {
		t.Errorf("out = %q, errors = %v", out, bag.HasErrors())
	}
}

func TestCheckRoundTrip(t *testing.T) {
	inputs := []string{
		"f : (i64) -> i64\nf(x) = x\n",
		"k:(i64)->(f64)->i64 k(a)=(b)->a",
		"// c\ny : f64\ny = 5;\n",
	}
	for _, in := range inputs {
		fs := source.NewFileSet()
		sf := fs.Get(fs.AddVirtual("m.ss", []byte(in)))
		if ok, msg := CheckRoundTrip(sf, 10); !ok {
			t.Errorf("%q: %s", in, msg)
		}
	}

	fs := source.NewFileSet()
	broken := fs.Get(fs.AddVirtual("m.ss", []byte("f : (")))
	if ok, _ := CheckRoundTrip(broken, 10); ok {
		t.Error("broken input must not round-trip")
	}
}

func TestFormatFileErrors(t *testing.T) {
	if _, err := FormatFile(nil, nil, 0); err == nil {
		t.Error("nil file must fail")
	}
}
