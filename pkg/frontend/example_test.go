package frontend_test

import (
	"fmt"

	"asmfront/pkg/frontend"
	"asmfront/pkg/sema"
)

func ExampleProcess() {
	u, err := frontend.Process(frontend.Source{Name: "demo.asm", Text: "outer:\n.res >inner .byte\n"}, frontend.Options{})
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, s := range sema.Symbols(u.File) {
		fmt.Println(s)
	}
	// Output:
	// label   outer                    line 1
	// res     outer>inner              .byte (1 bytes)  line 2
}

func ExampleSnippet() {
	src := "nop\nfoo\nret\n"
	_, err := frontend.Process(frontend.Source{Name: "bad.asm", Text: src}, frontend.Options{})
	fmt.Println(err)
	fmt.Print(frontend.Snippet(err, src))
	// Output:
	// bad.asm: *** PARSER ERROR [LINE 2]: Expected : after a label directive.
	// *** PARSER ERROR [LINE 2]: Expected : after a label directive.
	//
	//    1 | nop
	//    2 > foo
	//    3 | ret
}
