//go:build ignore

// Walkthrough script exercising the journal end to end.
// Run with: go run scripts/journal_walkthrough.go
package main

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/AleutianAI/rewind/pkg/edits"
	"github.com/AleutianAI/rewind/pkg/journal"
	"github.com/AleutianAI/rewind/pkg/logging"
)

func banner(title string) {
	line := strings.Repeat("═", 66)
	fmt.Println("╔" + line + "╗")
	fmt.Printf("║ %-64s ║\n", title)
	fmt.Println("╚" + line + "╝")
}

func step(title string) {
	line := strings.Repeat("─", 65)
	fmt.Println("\n┌" + line + "┐")
	fmt.Printf("│ %-63s │\n", title)
	fmt.Println("└" + line + "┘")
}

func printHistory(j *journal.Journal) {
	head, hasHead := j.Head()
	for i, msg := range j.Messages() {
		marker := " "
		if hasHead && i == head {
			marker = ">"
		}
		fmt.Printf("    %s %d. %s\n", marker, i+1, msg)
	}
}

func main() {
	banner("JOURNAL WALKTHROUGH")

	logger := logging.New(logging.Config{Level: logging.LevelWarn, Service: "walkthrough"})
	defer logger.Close()

	// 1. Create the journal against a manual clock so the coalescing window
	// is under our control.
	step("Step 1: Creating journal (depth 8, 250ms window)")
	clock := journal.NewManualClock(time.Now())
	j, err := journal.New(8, &journal.Options{
		UpdateWindow: 250 * time.Millisecond,
		Logger:       logger.Slog(),
		Clock:        clock,
	})
	if err != nil {
		log.Fatalf("creating journal: %v", err)
	}
	defer j.Dispose()
	fmt.Printf("  ✓ journal created, id: %s\n", j.ID())

	// 2. A rapid burst of edits against the same value coalesces.
	step("Step 2: Typing burst inside the window")
	var title string
	for _, v := range []string{"d", "dr", "dra", "draft"} {
		edit := edits.NewSetValue(&title, v, "title")
		edit.Do()
		j.UpdateOrAdd(edit)
		clock.Advance(50 * time.Millisecond)
	}
	fmt.Printf("  ✓ 4 keystrokes, %d history entry\n", j.Len())
	printHistory(j)

	// 3. Past the window the next edit gets its own entry.
	step("Step 3: Editing again after the window expired")
	clock.Advance(300 * time.Millisecond)
	edit := edits.NewSetValue(&title, "draft 2", "title")
	edit.Do()
	j.UpdateOrAdd(edit)
	fmt.Printf("  ✓ %d entries now\n", j.Len())
	printHistory(j)

	// 4. Move the cursor.
	step("Step 4: Undo and redo")
	j.Undo()
	fmt.Printf("  ✓ after undo:  title=%q\n", title)
	j.Redo()
	fmt.Printf("  ✓ after redo:  title=%q\n", title)

	// 5. Adding while the cursor sits mid-history drops the redo branch.
	step("Step 5: Divergent edit discards the redo branch")
	j.Undo()
	clock.Advance(time.Second)
	var body string
	edit = edits.NewSetValue(&body, "hello", "body")
	edit.Do()
	j.UpdateOrAdd(edit)
	fmt.Printf("  ✓ can redo: %v\n", j.CanRedo())
	printHistory(j)

	// 6. The journal is bounded: old entries fall off the front.
	step("Step 6: Overflowing the depth limit")
	var counter int
	for i := 1; i <= 10; i++ {
		clock.Advance(time.Second)
		edit := edits.NewSetValue(&counter, i, "counter")
		edit.Do()
		j.UpdateOrAdd(edit)
	}
	fmt.Printf("  ✓ %d entries kept of %d added\n", j.Len(), 12)
	printHistory(j)

	banner("WALKTHROUGH COMPLETE")
}
