package lang_test

import (
	"context"
	"fmt"

	"github.com/ardnew/permute/lang"
)

func ExampleStatement_FullyExpand() {
	stmt, err := lang.ParseString(context.Background(), "a {black|brown} {cat|dog}")
	if err != nil {
		panic(err)
	}

	out, err := stmt.FullyExpand(context.Background())
	if err != nil {
		panic(err)
	}

	for _, s := range out {
		fmt.Println(s)
	}
	// Output:
	// a black cat
	// a black dog
	// a brown cat
	// a brown dog
}

func ExampleExpand_variables() {
	out, err := lang.Expand(context.Background(),
		"{<animal>:cat|dog}!a {<animal>} chased another {<animal>}")
	if err != nil {
		panic(err)
	}

	for _, s := range out {
		fmt.Println(s)
	}
	// Output:
	// a cat chased another cat
	// a dog chased another dog
}

func ExampleExpand_ordering() {
	out, _ := lang.Expand(context.Background(), "{1:cat|dog} and {0:red|blue}")

	fmt.Println(out)
	// Output:
	// [cat and red dog and red cat and blue dog and blue]
}

func ExampleStatement_Count() {
	n, ok := lang.MustParse("{a|b|c}{0.0;1.0;0.1}").Count()

	fmt.Println(n, ok)
	// Output:
	// 33 true
}

func ExampleParseError_Snippet() {
	_, err := lang.ParseString(context.Background(), "{5;1;1}")

	if pe, ok := err.(*lang.ParseError); ok {
		fmt.Println(pe.Error())
		fmt.Print(pe.Snippet())
	}
	// Output:
	// parse error at line 1, column 6: step has the wrong sign for range from 5 to 1
	//   1 | {5;1;1}
	//            ^
}
