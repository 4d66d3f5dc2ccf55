// sexp-dump is a debugging aid: it parses a schematic file with both the
// generic chewxy/sexp parser and the kicad-aware parser and prints what
// each sees. Useful when a file fails to load and the question is whether
// the s-expression layer or the document layer is at fault.
package main

import (
	"fmt"
	"os"

	chewxy "github.com/chewxy/sexp"

	"schtrace/pkg/kicad/sexp"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: sexp-dump <schematic_file>")
		os.Exit(1)
	}

	filename := os.Args[1]
	file, err := os.Open(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open %s: %v\n", filename, err)
		os.Exit(1)
	}
	defer file.Close()

	info, _ := file.Stat()
	fmt.Printf("File size: %d bytes (%.2f MB)\n", info.Size(), float64(info.Size())/1024/1024)

	fmt.Println("\nGeneric parser (chewxy/sexp):")
	generic, err := chewxy.Parse(file)
	if err != nil {
		fmt.Printf("  Error: %v\n", err)
	} else {
		fmt.Printf("  Parsed %d s-expressions\n", len(generic))
		if len(generic) > 0 && !generic[0].IsLeaf() {
			fmt.Printf("  Leaf count: %d\n", generic[0].LeafCount())
		}
	}

	file.Seek(0, 0)

	fmt.Println("\nKiCad parser:")
	docs, err := sexp.Parse(file)
	if err != nil {
		fmt.Printf("  Error: %v\n", err)
		return
	}
	fmt.Printf("  Parsed %d s-expressions\n", len(docs))
	for _, doc := range docs {
		name, err := sexp.GetNodeName(doc)
		if err != nil {
			continue
		}
		fmt.Printf("  Root node: %s (%d children)\n", name, doc.Len())
		dumpChildren(doc)
	}
}

// dumpChildren prints a histogram of top-level node types
func dumpChildren(root sexp.Sexp) {
	counts := make(map[string]int)
	var order []string

	list, ok := root.(*sexp.List)
	if !ok || list.Len() == 0 {
		return
	}
	for _, child := range list.Items()[1:] {
		name, err := sexp.GetNodeName(child)
		if err != nil {
			name = "(atom)"
		}
		if counts[name] == 0 {
			order = append(order, name)
		}
		counts[name]++
	}

	for _, name := range order {
		fmt.Printf("    %-20s %d\n", name, counts[name])
	}
}
