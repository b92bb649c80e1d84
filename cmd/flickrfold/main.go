// flickrfold embeds Flickr export metadata into per-album copies of the
// original images, ready for import into another photo manager.
package main

import (
	"flag"
	"fmt"

	"k8s.io/klog/v2"

	"github.com/fsnotify/fsnotify"
	flickrfold "github.com/mfarrell/flickrfold/pkg/flickrfold"
)

var (
	dataDir   = flag.String("data", "", "Location of the export's per-photo JSON records")
	imageDir  = flag.String("images", "", "Location of the export's original image files")
	outDir    = flag.String("out", "", "Location of the output directory (one folder per album)")
	watchFlag = flag.Bool("watch", false, "keep running and process record files as they appear")
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	if *dataDir == "" {
		klog.Exitf("--data is a required flag")
	}

	if *imageDir == "" {
		klog.Exitf("--images is a required flag")
	}

	if *outDir == "" {
		klog.Exitf("--out is a required flag")
	}

	c := &flickrfold.Config{
		DataDir:  *dataDir,
		ImageDir: *imageDir,
		OutDir:   *outDir,
	}

	runner, err := flickrfold.NewRunner(c)
	if err != nil {
		klog.Exitf("setup failed: %v", err)
	}
	defer runner.Close()

	stats, err := runner.Run()
	if err != nil {
		klog.Exitf("run failed: %v", err)
	}

	summarize(stats, *outDir)

	if *watchFlag {
		if err := watch(c, runner, stats); err != nil {
			klog.Exitf("watch failed: %v", err)
		}
	}
}

// summarize prints the aggregate counters, the only externally
// observable result of a run.
func summarize(s *flickrfold.RunStats, outDir string) {
	fmt.Println("Processing complete!")
	fmt.Printf("   Processed: %d\n", s.Processed)
	fmt.Printf("   Skipped: %d\n", s.Skipped)
	fmt.Printf("   Errors: %d\n", s.Errors)
	fmt.Printf("   Missing images: %d\n", s.MissingImages)
	fmt.Printf("   Total metadata fields added/updated: %d\n", s.TotalChanges)
	fmt.Printf("   Total: %d\n", s.Records)
	fmt.Printf("   Time elapsed: %.1fs\n", s.Elapsed.Seconds())
	fmt.Printf("\nEnhanced images saved to: %s\n", outDir)
}

// watch keeps processing record files as the export drops them into
// the data directory.
func watch(c *flickrfold.Config, runner *flickrfold.Runner, stats *flickrfold.RunStats) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("new watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(c.DataDir); err != nil {
		return fmt.Errorf("watch %s: %w", c.DataDir, err)
	}

	filter := flickrfold.NewEventFilter()

	klog.Infof("watching %s for new records ...", c.DataDir)
	for {
		select {
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !filter.Wants(event) {
				continue
			}

			res := runner.ProcessFile(event.Name)
			stats.Add(res)
			klog.Infof("%s: %s (%d changes)", event.Name, res.Outcome, res.Changes)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			klog.Errorf("watch error: %v", err)
		}
	}
}
