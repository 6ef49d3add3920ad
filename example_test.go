package luapat_test

import (
	"fmt"
	"strings"

	"github.com/coregx/luapat"
)

// ExampleCompile demonstrates basic pattern compilation and matching.
func ExampleCompile() {
	p, err := luapat.Compile(`%d+`)
	if err != nil {
		panic(err)
	}

	fmt.Println(p.MatchString("hello 123"))
	// Output: true <nil>
}

// ExamplePattern_MatchAt demonstrates the single-shot interface.
func ExamplePattern_MatchAt() {
	p := luapat.MustCompile(`(%a+)=()(%d+)`)
	subject := []byte("x=1, yy=22")

	n, _ := p.MatchAt(subject, 1)
	fmt.Println(n)
	fmt.Println(p.Range())
	key, _ := p.CaptureBytes(subject, 1)
	fmt.Println(string(key))
	fmt.Println(p.Capture(2))
	// Output:
	// 4
	// 5 10
	// yy
	// @8
}

// ExamplePattern_FindStringSubmatch demonstrates capture extraction.
func ExamplePattern_FindStringSubmatch() {
	p := luapat.MustCompile(`(%a+)%s*=%s*(%d+)`)
	m, _ := p.FindStringSubmatch("width = 640")
	fmt.Printf("%q\n", m)
	// Output: ["width = 640" "width" "640"]
}

// ExamplePattern_Find demonstrates a balanced match.
func ExamplePattern_Find() {
	p := luapat.MustCompile(`%b()`)
	m, _ := p.Find([]byte("f(a(b)c)d"))
	fmt.Println(string(m))
	// Output: (a(b)c)
}

// ExamplePattern_Gmatch iterates like Lua's string.gmatch.
func ExamplePattern_Gmatch() {
	p := luapat.MustCompile(`(%w+)=%w+`)
	for key, err := range p.Gmatch("from=world, to=Lua") {
		if err != nil {
			panic(err)
		}
		fmt.Println(key)
	}
	// Output:
	// from
	// to
}

// ExamplePattern_Gsub substitutes with a template like Lua's string.gsub.
func ExamplePattern_Gsub() {
	p := luapat.MustCompile(`(%S+)%s*=%s*(%S+);%s*`)
	out, count, _ := p.Gsub("a=2; b=3; c = 4;", "'%2':%1 ", -1)
	fmt.Printf("%q %d\n", out, count)
	// Output: "'2':a '3':b '4':c " 3
}

// ExamplePattern_ReplaceAllStringFunc substitutes with a function.
func ExamplePattern_ReplaceAllStringFunc() {
	p := luapat.MustCompile(`%$(%S+)`)
	out, _ := p.ReplaceAllStringFunc("hello $dolly you're so $fine!", func(m *luapat.Match) string {
		name, _ := m.GroupString(1)
		return strings.ToUpper(name)
	})
	fmt.Println(out)
	// Output: hello DOLLY you're so FINE!
}

// ExampleBuilder assembles a pattern from text and escaped data.
func ExampleBuilder() {
	pattern := new(luapat.Builder).
		Text("^").
		Bytes([]byte("1+1=2")).
		Text("$").
		Build()
	fmt.Println(string(pattern))
	// Output: ^1%+1=2$
}

// ExampleQuoteMeta escapes magic bytes.
func ExampleQuoteMeta() {
	fmt.Println(luapat.QuoteMeta("50% off (today)"))
	// Output: 50%% off %(today%)
}
