package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"receiptscan/pkg/ocrsource"
	"receiptscan/pkg/receipt"
)

var (
	apiBase string
	verbose bool
)

func main() {
	defaultDir := os.Getenv("WATCH_DIR")
	if defaultDir == "" {
		defaultDir = "incoming"
	}
	dir := flag.String("dir", defaultDir, "directory of receipt images to ingest")
	api := flag.String("api", "", "base URL of the receipt API (empty: log summaries only)")
	workers := flag.Int("workers", runtime.NumCPU(), "OCR worker count")
	once := flag.Bool("once", false, "process existing files and exit instead of watching")
	flag.BoolVar(&verbose, "v", false, "verbose logging")
	flag.Parse()

	apiBase = strings.TrimRight(*api, "/")

	if *once {
		names := listImageFiles(*dir)
		log.Printf("processing %d existing file(s) in %s", len(names), *dir)
		runWorkerPool(*dir, names, *workers, nil)
		return
	}
	if err := watchDirectory(*dir, *workers); err != nil {
		log.Fatalf("watch %s: %v", *dir, err)
	}
}

func listImageFiles(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !isSupportedExt(e.Name()) {
			continue
		}
		out = append(out, e.Name())
	}
	sort.Strings(out)
	return out
}

func watchDirectory(dir string, workers int) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	if err := w.Add(dir); err != nil {
		return err
	}
	log.Printf("Watching %s (debounced) ...", dir)

	fileCh := make(chan string, 256)
	go func() {
		// simple debounce map of pending files
		pending := map[string]time.Time{}
		ticker := time.NewTicker(250 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					close(fileCh)
					return
				}
				if ev.Op&fsnotify.Create == fsnotify.Create {
					name := filepath.Base(ev.Name)
					if !isSupportedExt(name) {
						continue
					}
					pending[name] = time.Now()
				}
			case <-ticker.C:
				now := time.Now()
				for name, t := range pending {
					if now.Sub(t) > 300*time.Millisecond { // stable
						fileCh <- name
						delete(pending, name)
					}
				}
			case err, ok := <-w.Errors:
				if !ok {
					close(fileCh)
					return
				}
				log.Printf("watch error: %v", err)
			}
		}
	}()

	runWorkerPool(dir, nil, workers, fileCh)
	return nil
}

// runWorkerPool fans filenames out to OCR workers. It returns once the initial
// list and any extra channel are both drained.
func runWorkerPool(dir string, initial []string, workers int, extraCh <-chan string) {
	fileCh := make(chan string, 1024)
	var wg sync.WaitGroup
	if workers < 1 {
		workers = 1
	}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for name := range fileCh {
				ingestFile(dir, name)
			}
		}()
	}
	for _, name := range initial {
		fileCh <- name
	}
	if extraCh != nil {
		for name := range extraCh {
			fileCh <- name
		}
	}
	close(fileCh)
	wg.Wait()
}

func ingestFile(dir, name string) {
	full := filepath.Join(dir, name)
	frags, err := ocrsource.ExtractFragments(full)
	if err != nil {
		log.Printf("ocr error %s: %v", name, err)
		return
	}
	summary := receipt.Parse(frags)
	if verbose {
		log.Printf("%s: store=%q missing=%v items=%d", name, summary.StoreName, summary.StoreNameMissing, len(summary.Items))
	}
	if apiBase == "" {
		out, _ := json.Marshal(summary)
		fmt.Printf("%s %s\n", name, out)
		return
	}
	if err := submitSummary(summary); err != nil {
		log.Printf("submit %s: %v", name, err)
	}
}

type itemPayload struct {
	Quantity    int      `json:"quantity"`
	Description string   `json:"description"`
	Price       *float64 `json:"price"`
}

type summaryPayload struct {
	StoreName *string       `json:"storeName"`
	Address   *string       `json:"address"`
	Items     []itemPayload `json:"items"`
}

func submitSummary(s receipt.Summary) error {
	payload := summaryPayload{Items: make([]itemPayload, 0, len(s.Items))}
	if s.StoreName != "" {
		payload.StoreName = &s.StoreName
	}
	if s.Address != "" {
		payload.Address = &s.Address
	}
	for _, it := range s.Items {
		payload.Items = append(payload.Items, itemPayload{Quantity: it.Quantity, Description: it.Description, Price: it.Price})
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	resp, err := http.Post(apiBase+"/receipts", "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("api returned %s", resp.Status)
	}
	var verdict struct {
		StoreExists bool   `json:"store_exists"`
		ItemsExist  []bool `json:"items_exist"`
		Status      string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&verdict); err != nil {
		return err
	}
	log.Printf("verified: store_exists=%v items=%v status=%s", verdict.StoreExists, verdict.ItemsExist, verdict.Status)
	return nil
}

func isSupportedExt(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".gif", ".webp":
		return true
	}
	return false
}
