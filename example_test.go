package succinct_test

import (
	"fmt"

	"github.com/sakateka/succinct/bitstore"
	"github.com/sakateka/succinct/rank"
	"github.com/sakateka/succinct/selectidx"
	"github.com/sakateka/succinct/sparse"
)

func intPtr(v int) *int {
	return &v
}

func ExampleArray() {
	dense := []*int{nil, intPtr(1), nil, intPtr(2), intPtr(3)}
	arr := sparse.FromDenseVec(dense)

	fmt.Println("size:", arr.Size())
	fmt.Println("num_elem:", arr.NumElem())
	fmt.Println("get_at_index(1):", *arr.GetAtIndex(1))
	fmt.Println("get_at_index(3):", *arr.GetAtIndex(3))
	fmt.Println("get_index_of(2):", *arr.GetIndexOf(2))

	// Output:
	// size: 5
	// num_elem: 3
	// get_at_index(1): 1
	// get_at_index(3): 2
	// get_index_of(2): 3
}

func ExampleIndex_rank1() {
	store := bitstore.FromBits([]bool{false, true, true, true, false})
	idx := rank.Build(store)

	fmt.Println(idx.Rank1(0), idx.Rank1(2), idx.Rank1(5))

	// Output:
	// 0 1 3
}

func ExampleIndex_select1() {
	store := bitstore.FromBits([]bool{false, true, true, false, true, false})
	sel := selectidx.From(rank.Build(store))

	fmt.Println(sel.Select1(1), sel.Select1(2), sel.Select1(3))

	// Output:
	// 2 3 5
}
