package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"receiptscan/pkg/receipt"
)

func main() {
	f := flag.String("file", "", "raw OCR text file to parse (degraded mode)")
	flag.Parse()
	if *f == "" {
		log.Fatalf("-file required")
	}
	raw, err := os.ReadFile(*f)
	if err != nil {
		log.Fatalf("read file: %v", err)
	}
	s := receipt.ParseText(string(raw))
	out, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		log.Fatalf("marshal: %v", err)
	}
	fmt.Println(string(out))
}
