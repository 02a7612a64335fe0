package scheduler

import (
	"bufio"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// storeFieldCount mirrors the record layout of the vehicle store file.
const storeFieldCount = 7

// Scheduler runs periodic background jobs against the inventory store file.
// The store itself silently skips malformed lines, so without this job file
// corruption would never surface anywhere.
type Scheduler struct {
	cron      *cron.Cron
	storePath string
}

// NewScheduler creates a new scheduler instance for the given store file
func NewScheduler(storePath string) *Scheduler {
	return &Scheduler{
		cron:      cron.New(cron.WithLocation(time.UTC)),
		storePath: storePath,
	}
}

// Start begins the scheduler with all registered jobs
func (s *Scheduler) Start() {
	// Scan the store file for corruption nightly at 3 AM UTC
	_, err := s.cron.AddFunc("0 3 * * *", s.ScanStoreIntegrity)
	if err != nil {
		zap.S().Errorw("failed to register integrity scan job", "error", err)
	}

	s.cron.Start()
	zap.S().Info("inventory scheduler started")
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	zap.S().Info("inventory scheduler stopped")
}

// ScanStoreIntegrity walks the store file and reports malformed lines,
// unparseable numeric fields and duplicate chassis numbers. It never
// modifies the file.
func (s *Scheduler) ScanStoreIntegrity() {
	f, err := os.Open(s.storePath)
	if err != nil {
		if os.IsNotExist(err) {
			zap.S().Debugw("integrity scan skipped, store file does not exist", "path", s.storePath)
			return
		}
		zap.S().Errorw("integrity scan failed to open store file", "path", s.storePath, "error", err)
		return
	}
	defer f.Close()

	seen := map[string]int{}
	var total, malformed, badNumbers, duplicates int

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		total++
		parts := strings.Split(scanner.Text(), ",")
		if len(parts) != storeFieldCount {
			malformed++
			zap.S().Warnw("malformed line in vehicle store",
				"path", s.storePath,
				"line", lineNo,
				"fields", len(parts),
			)
			continue
		}

		if _, err := strconv.Atoi(strings.TrimSpace(parts[2])); err != nil {
			badNumbers++
		} else if _, err := strconv.Atoi(strings.TrimSpace(parts[3])); err != nil {
			badNumbers++
		} else if _, err := strconv.ParseFloat(strings.TrimSpace(parts[4]), 64); err != nil {
			badNumbers++
		}

		chassis := strings.TrimSpace(parts[5])
		if prev, ok := seen[chassis]; ok {
			duplicates++
			zap.S().Warnw("duplicate chassis number in vehicle store",
				"path", s.storePath,
				"chassisNumber", chassis,
				"line", lineNo,
				"firstSeenLine", prev,
			)
		} else {
			seen[chassis] = lineNo
		}
	}
	if err := scanner.Err(); err != nil {
		zap.S().Errorw("integrity scan failed while reading store file", "path", s.storePath, "error", err)
		return
	}

	zap.S().Infow("store integrity scan complete",
		"path", s.storePath,
		"lines", total,
		"malformed", malformed,
		"badNumbers", badNumbers,
		"duplicateChassisNumbers", duplicates,
	)
}
