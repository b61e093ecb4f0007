package clusterkit_test

import (
	"context"
	"fmt"
	"log"

	"github.com/hupe1980/clusterkit"
	"github.com/hupe1980/clusterkit/blobstore"
)

var examplePoints = [][]float64{
	{0, 0}, {0, 1}, {1, 0},
	{10, 10}, {10, 11}, {11, 10},
}

// Example_kMeans demonstrates hard k-means on two well separated groups.
func Example_kMeans() {
	eng := clusterkit.New(2, clusterkit.WithSeed(1))
	eng.AddPoints(examplePoints)
	eng.InitializeCenters()

	if _, err := eng.Run(context.Background(), clusterkit.RunOptions{}); err != nil {
		log.Fatal(err)
	}

	a := eng.Assignments()
	fmt.Println("same cluster:", a[0] == a[1] && a[1] == a[2])
	fmt.Println("separated:", a[0] != a[3])
	fmt.Println("members:", eng.Members(a[0]).ToArray())
	// Output:
	// same cluster: true
	// separated: true
	// members: [0 1 2]
}

// Example_softKMeans demonstrates responsibilities under soft k-means.
func Example_softKMeans() {
	eng := clusterkit.New(2,
		clusterkit.WithMode(clusterkit.ModeSoft),
		clusterkit.WithBeta(2),
		clusterkit.WithSeed(1),
	)
	eng.AddPoints(examplePoints)
	eng.InitializeCenters()

	if _, err := eng.Run(context.Background(), clusterkit.RunOptions{}); err != nil {
		log.Fatal(err)
	}

	r := eng.Test([]float64{0.5, 0.5})
	fmt.Printf("sum: %.2f\n", r[0]+r[1])
	fmt.Printf("confident: %t\n", max(r[0], r[1]) > 0.99)
	// Output:
	// sum: 1.00
	// confident: true
}

// Example_snapshot demonstrates saving and loading an engine.
func Example_snapshot() {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	eng := clusterkit.New(2, clusterkit.WithMode(clusterkit.ModeGMM), clusterkit.WithSeed(1))
	eng.AddPoints(examplePoints)
	eng.InitializeCenters()
	eng.Update(true)

	if err := eng.Save(ctx, store, "models/demo.cks"); err != nil {
		log.Fatal(err)
	}

	loaded, err := clusterkit.Load(ctx, store, "models/demo.cks")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%s: %d points, %d clusters\n", loaded.Mode(), loaded.Len(), loaded.ClusterCount())
	// Output: gmm: 6 points, 2 clusters
}

// Example_parseMode demonstrates mode names and aliases.
func Example_parseMode() {
	for _, name := range []string{"kmeans", "soft", "EM"} {
		m, ok := clusterkit.ParseMode(name)
		fmt.Println(name, "=>", m, ok)
	}
	// Output:
	// kmeans => hard true
	// soft => soft true
	// EM => gmm true
}
