package geogo_test

import (
	"context"
	"fmt"

	"github.com/hupe1980/geogo"
	"github.com/hupe1980/geogo/metadata"
)

func Example() {
	ctx := context.Background()

	db, err := geogo.New[string](2)
	if err != nil {
		panic(err)
	}

	cities := []geogo.PointWithData[string]{
		{Point: []float64{13.40, 52.52}, Data: "Berlin", Metadata: metadata.Document{"country": "DE"}},
		{Point: []float64{2.35, 48.85}, Data: "Paris", Metadata: metadata.Document{"country": "FR"}},
		{Point: []float64{11.58, 48.14}, Data: "Munich", Metadata: metadata.Document{"country": "DE"}},
	}
	for _, c := range cities {
		if _, err := db.Insert(ctx, c); err != nil {
			panic(err)
		}
	}

	results, err := db.Search([]float64{8.68, 50.11}).
		KNN(2).
		Filter(metadata.Eq("country", "DE")).
		Execute(ctx)
	if err != nil {
		panic(err)
	}

	for _, r := range results {
		fmt.Println(r.Data)
	}
	// Output:
	// Munich
	// Berlin
}
