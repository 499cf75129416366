package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"tarn/common"
	"tarn/logging"
	"tarn/mods"

	"github.com/fsnotify/fsnotify"
)

// debounce is how long the watcher waits for changes to settle before
// checking the module again
const debounce = 250 * time.Millisecond

// watchModule runs check once and then again every time a source file of the
// module changes.  It only returns if the watcher fails.
func watchModule(man *mods.Manifest, check func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	for _, root := range append([]string{man.SourceDir}, man.ImportDirs...) {
		// import directories are optional
		if _, statErr := os.Stat(root); statErr != nil && root != man.SourceDir {
			continue
		}

		if err := addWatchRecursive(watcher, root); err != nil {
			return err
		}
	}

	check()
	logging.PrintInfoMessage("Watch", "waiting for changes in "+man.SourceDir)

	timer := time.NewTimer(time.Hour)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if event.Op&fsnotify.Create != 0 {
				if info, statErr := os.Stat(event.Name); statErr == nil && info.IsDir() {
					_ = addWatchRecursive(watcher, event.Name)
				}
			}

			if !isSourceEvent(event) {
				continue
			}

			timer.Reset(debounce)
		case <-timer.C:
			check()
		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			return watchErr
		}
	}
}

// addWatchRecursive watches a directory and all of its visible subdirectories
func addWatchRecursive(watcher *fsnotify.Watcher, root string) error {
	root = filepath.Clean(root)
	return filepath.WalkDir(root, func(path string, entry os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		if !entry.IsDir() {
			return nil
		}

		if path != root && strings.HasPrefix(entry.Name(), ".") {
			return filepath.SkipDir
		}

		return watcher.Add(path)
	})
}

// isSourceEvent returns whether a file system event can change the outcome of
// a check
func isSourceEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}

	return filepath.Ext(event.Name) == common.SrcFileExtension
}
