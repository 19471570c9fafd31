package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/pyhub-apps/tablestitch/pkg/config"
	"github.com/pyhub-apps/tablestitch/pkg/extractors"
	"github.com/pyhub-apps/tablestitch/pkg/pdf"
	"github.com/pyhub-apps/tablestitch/pkg/table"
)

func main() {
	var (
		pdfPath       = flag.String("pdf", "", "Path to PDF file")
		pageNum       = flag.Int("page", 1, "Page number (1-based)")
		xTolerance    = flag.Float64("x-tolerance", config.DefaultWordXTolerance, "X tolerance for word separation")
		lineTolerance = flag.Float64("line-tolerance", config.DefaultLineTolerance, "Vertical tolerance for line grouping")
		profileName   = flag.String("profile", config.Default().Name, "Profile used to mark header lines")
	)
	flag.Parse()

	if *pdfPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	profile, err := config.Resolve(*profileName, "")
	if err != nil {
		log.Fatalf("Failed to load profile: %v", err)
	}

	doc, err := pdf.Open(*pdfPath)
	if err != nil {
		log.Fatalf("Failed to open PDF: %v", err)
	}
	defer doc.Close()

	fmt.Printf("Backend: %s\n", doc.Backend())
	fmt.Printf("Pages: %d\n\n", doc.PageCount())

	page, err := doc.GetPage(*pageNum - 1)
	if err != nil {
		log.Fatalf("Failed to get page: %v", err)
	}

	fmt.Printf("Page %d:\n", page.GetPageNumber())
	fmt.Printf("  Width: %.2f\n", page.GetWidth())
	fmt.Printf("  Height: %.2f\n", page.GetHeight())

	words := page.ExtractWords(pdf.WithWordXTolerance(*xTolerance))
	fmt.Printf("\nWords extracted: %d (x tolerance %.1f)\n\n", len(words), *xTolerance)

	tokens := make([]extractors.Token, len(words))
	for i, w := range words {
		tokens[i] = extractors.Token{Text: w.Text, Left: w.X0, Right: w.X1, Top: w.Top, Bottom: w.Bottom}
	}

	organizer := extractors.NewTextOrganizer()
	organizer.SetTolerance(*lineTolerance)
	lines := organizer.ClusterLines(tokens)

	fmt.Printf("Lines (line tolerance %.1f):\n", organizer.Tolerance())
	for i, line := range lines {
		marker := " "
		if table.IsHeaderLine(line, profile) {
			marker = "H"
			if _, ok := table.BuildColumnModel(line, profile); !ok {
				marker = "R"
			}
		} else if table.IsTerminator(line, profile) {
			marker = "T"
		}
		fmt.Printf("%s %3d top=%7.2f  %s\n", marker, i, line.Top(), line.Text())

		if marker == "H" {
			model, _ := table.BuildColumnModel(line, profile)
			for _, c := range model.Columns() {
				fmt.Printf("        column %-24q anchor=%.2f\n", c.Label, c.Anchor)
			}
		}
	}
}
