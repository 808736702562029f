// Command sigverify validates the static signature database offline: every
// entry's selector must equal the Keccak hash of its signature text, and
// (unless -offline) every signature must be known to the public
// 4byte.directory registry. It never runs as part of the decode path.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/0xPexy/callscope-backend/internal/abidec"
	"github.com/0xPexy/callscope-backend/internal/sigdb"
)

type registryResponse struct {
	Count   int `json:"count"`
	Results []struct {
		TextSignature string `json:"text_signature"`
	} `json:"results"`
}

func main() {
	var (
		baseURL   = flag.String("base-url", "https://www.4byte.directory/api/v1/signatures/", "public signature registry endpoint")
		timeout   = flag.Duration("timeout", 10*time.Second, "per-request timeout")
		offline   = flag.Bool("offline", false, "skip registry lookups, only check selector/keccak consistency")
		sigFile   = flag.String("file", "", "optional custom signature JSON merged over the embedded set")
		pauseTime = flag.Duration("pause", 250*time.Millisecond, "delay between registry requests")
	)
	flag.Parse()

	db, err := sigdb.NewWithFile(*sigFile)
	if err != nil {
		log.Fatalf("load signature database: %v", err)
	}

	var mismatches int
	client := &http.Client{Timeout: *timeout}

	for _, selector := range db.Selectors() {
		for _, signature := range db.Candidates(selector) {
			if computed := abidec.Selector(signature); computed != selector {
				mismatches++
				fmt.Printf("SELFCHECK FAIL %s: %q hashes to %s\n", selector, signature, computed)
				continue
			}
			if *offline {
				continue
			}
			known, err := registryKnows(client, *baseURL, selector, signature)
			if err != nil {
				fmt.Printf("LOOKUP ERROR   %s: %q: %v\n", selector, signature, err)
				continue
			}
			if !known {
				mismatches++
				fmt.Printf("NOT REGISTERED %s: %q\n", selector, signature)
			}
			time.Sleep(*pauseTime)
		}
	}

	if mismatches > 0 {
		fmt.Printf("%d mismatched entries\n", mismatches)
		os.Exit(1)
	}
	fmt.Printf("all %d selectors verified\n", db.Size())
}

func registryKnows(client *http.Client, baseURL, selector, signature string) (bool, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return false, err
	}
	q := u.Query()
	q.Set("hex_signature", selector)
	u.RawQuery = q.Encode()

	resp, err := client.Get(u.String())
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("registry returned %s", resp.Status)
	}

	var body registryResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return false, err
	}
	for _, result := range body.Results {
		if result.TextSignature == signature {
			return true, nil
		}
	}
	return false, nil
}
