package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/luuzuriaga/bookstore/catalog"
)

/* validate-catalog - Standalone CLI tool to validate catalog.yaml
 * Usage: go run ./cmd/validate-catalog [catalog.yaml]
 * Exit codes: 0 = valid, 1 = invalid
 */

func main() {
	catalogFile := "catalog.yaml"
	if len(os.Args) > 1 {
		catalogFile = os.Args[1]
	}

	fmt.Printf("Validating catalog file: %s\n", catalogFile)
	fmt.Println(strings.Repeat("-", 50))

	loader := catalog.NewLoader()
	if err := loader.Load(catalogFile); err != nil {
		fmt.Fprintf(os.Stderr, "❌ VALIDATION FAILED\n\n")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✓ VALIDATION PASSED\n\n")

	books := loader.Books()
	fmt.Printf("Loaded %d book(s):\n", len(books))
	for i, b := range books {
		fmt.Printf("\n%d. %s\n", i+1, b.Title)
		fmt.Printf("   Author: %s\n", b.Author)
		fmt.Printf("   Price:  %.2f\n", b.Price)
		fmt.Printf("   Stock:  %d\n", b.Stock)
	}

	customers := loader.Customers()
	fmt.Printf("\nLoaded %d customer(s):\n", len(customers))
	for i, c := range customers {
		fmt.Printf("%d. %s <%s>\n", i+1, c.Name, c.Email)
	}

	fmt.Printf("\n✓ Catalog is valid!\n")
}
