// Command podsign signs a delivery-note PDF from the command line.
//
// It extracts the subcontractor and site-receiver names from page 1,
// stamps the overlay (wrapped name, stylized signature, date) onto the
// first page, and writes the result next to the input under the derived
// "{stem}_signed_{HHMMSS}.pdf" name unless -out is given.
//
//	podsign -in note.pdf
//	podsign -in note.pdf -out signed.pdf -template custom.json
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/lvillar/podsign"
	"github.com/lvillar/podsign/overlay"
)

func main() {
	inPath := flag.String("in", "", "source delivery-note PDF (required)")
	outPath := flag.String("out", "", "output path (default: derived filename next to the input)")
	tplPath := flag.String("template", "", "JSON overlay template (default: built-in A4 delivery note)")
	flag.Parse()

	if err := run(*inPath, *outPath, *tplPath); err != nil {
		log.Fatalf("podsign: %v", err)
	}
}

func run(inPath, outPath, tplPath string) error {
	if inPath == "" {
		return fmt.Errorf("missing -in: specify a source PDF")
	}

	opts := []podsign.Option{}
	if tplPath != "" {
		tpl, err := overlay.LoadFile(tplPath)
		if err != nil {
			return err
		}
		opts = append(opts, podsign.WithTemplate(tpl))
	}

	res, err := podsign.New(opts...).SignFile(inPath)
	if err != nil {
		return err
	}

	fmt.Printf("subcon:   %s\n", res.Fields.Subcon.Value)
	fmt.Printf("receiver: %s\n", res.Fields.Receiver.Value)

	if outPath == "" {
		outPath = filepath.Join(filepath.Dir(inPath), res.Filename)
	}
	if err := os.WriteFile(outPath, res.Signed, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}
	fmt.Printf("signed:   %s (%d bytes)\n", outPath, len(res.Signed))
	return nil
}
