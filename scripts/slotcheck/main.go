// Command slotcheck inspects the primary and backup document slots of a file
// store directory and reports whether both decode and how far they diverge.
// Useful after a crash or before a manual restore.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

type document struct {
	Courses     []json.RawMessage `json:"courses"`
	Students    []json.RawMessage `json:"students"`
	Instructors []json.RawMessage `json:"instructors"`
	Categories  []json.RawMessage `json:"categories"`
	Enrollments []json.RawMessage `json:"enrollments"`
}

type slot struct {
	name string
	path string
	ok   bool
	err  error
	doc  document
	size int64
}

func main() {
	var (
		dir        string
		primaryKey string
		backupKey  string
	)

	flag.StringVar(&dir, "dir", "./data", "store directory")
	flag.StringVar(&primaryKey, "primary", "coursedesk_data", "primary slot key")
	flag.StringVar(&backupKey, "backup", "coursedesk_backup", "backup slot key")
	flag.Parse()

	primary := readSlot("primary", dir, primaryKey)
	backup := readSlot("backup", dir, backupKey)

	report(primary)
	report(backup)

	if !primary.ok && !backup.ok {
		log.Fatal("neither slot is readable, a fresh start will reseed")
	}
	if primary.ok && backup.ok {
		diff := false
		diff = compareCounts("courses", len(primary.doc.Courses), len(backup.doc.Courses)) || diff
		diff = compareCounts("students", len(primary.doc.Students), len(backup.doc.Students)) || diff
		diff = compareCounts("instructors", len(primary.doc.Instructors), len(backup.doc.Instructors)) || diff
		diff = compareCounts("enrollments", len(primary.doc.Enrollments), len(backup.doc.Enrollments)) || diff
		if diff {
			fmt.Println("slots diverge; the backup is throttled and may lag the primary, this is usually fine")
		} else {
			fmt.Println("slots agree")
		}
	}
	if primary.ok && !backup.ok {
		fmt.Println("backup slot unreadable; the next throttled backup write will recreate it")
	}
	if !primary.ok && backup.ok {
		fmt.Println("primary slot unreadable; the app will fall back to the backup on next load")
	}
}

func readSlot(name, dir, key string) slot {
	s := slot{name: name, path: filepath.Join(dir, key+".json")}
	info, err := os.Stat(s.path)
	if err != nil {
		s.err = err
		return s
	}
	s.size = info.Size()
	raw, err := os.ReadFile(s.path)
	if err != nil {
		s.err = err
		return s
	}
	if err := json.Unmarshal(raw, &s.doc); err != nil {
		s.err = fmt.Errorf("decode: %w", err)
		return s
	}
	if s.doc.Courses == nil || s.doc.Students == nil || s.doc.Instructors == nil {
		s.err = fmt.Errorf("missing required collections")
		return s
	}
	s.ok = true
	return s
}

func report(s slot) {
	if !s.ok {
		fmt.Printf("%-8s %s: UNREADABLE (%v)\n", s.name, s.path, s.err)
		return
	}
	fmt.Printf("%-8s %s: %d bytes, %d courses, %d students, %d instructors, %d enrollments, %d categories\n",
		s.name, s.path, s.size,
		len(s.doc.Courses), len(s.doc.Students), len(s.doc.Instructors),
		len(s.doc.Enrollments), len(s.doc.Categories))
}

func compareCounts(collection string, primary, backup int) bool {
	if primary == backup {
		return false
	}
	fmt.Printf("  %s: primary has %d, backup has %d\n", collection, primary, backup)
	return true
}
