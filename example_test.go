package jsondec_test

import (
	"fmt"

	"github.com/swaggest/jsondec"
)

func ExampleDecode() {
	v, err := jsondec.Decode(`{"name": "Alice", "age": 30, "scores": [1.5, 2]}`)
	if err != nil {
		fmt.Println(err)

		return
	}

	name, _ := v.Get("name")
	age, _ := v.Get("age")
	scores, _ := v.Get("scores")

	fmt.Println(v.Type, v.Keys())
	fmt.Println(name.Str, age.Int, scores.Items[0].Float, scores.Items[1].Int)

	// Output:
	// object [name age scores]
	// Alice 30 1.5 2
}

func ExampleDecode_malformed() {
	_, err := jsondec.Decode(`{"a": 1,}`)
	fmt.Println(err)

	// Output:
	// trailing comma before '}' at offset 8
}

func ExampleNewDecoder() {
	d := jsondec.NewDecoder("[[[[1]]]]")
	d.MaxDepth = 3

	_, err := d.Decode()
	fmt.Println(err)

	// Output:
	// maximum recursion depth exceeded at offset 3
}
