package trainer

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/sightread/sightread"
)

// LoadLibrary parses every .scr file in dir, in file name order. Files that
// fail to parse are logged, reported to alerts (if not nil) and left out.
func LoadLibrary(dir string, playable func(sightread.Pitch) bool, renderable func(float64) bool, alerts *Alerts) ([]*sightread.Score, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("error reading score library: %w", err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ".scr") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	var ret []*sightread.Score
	for _, name := range names {
		score, err := sightread.ParseFile(filepath.Join(dir, name), playable, renderable)
		if err != nil {
			log.Printf("%s is invalid. Error: %v", name, err)
			if alerts != nil {
				alerts.Add(fmt.Sprintf("%s: %v", name, err), Warning, 5*time.Second)
			}
			continue
		}
		ret = append(ret, score)
	}
	return ret, nil
}
