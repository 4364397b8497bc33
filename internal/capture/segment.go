package capture

import "strings"

// PromptMarker replaces the user's prompt in captured command lines so the
// remote side sees a neutral delimiter instead of a personal prompt
const PromptMarker = ">>> "

// Block is the output of one executed command. Bounded blocks start with
// the command's prompt line (rewritten with PromptMarker); an unbounded
// block holds lines whose prompt scrolled out of the snapshot.
type Block struct {
	Lines   []string
	Bounded bool
}

// Segmentation is the result of splitting a snapshot into command blocks
type Segmentation struct {
	Blocks    []Block
	Requested int
}

// Partial reports whether fewer commands were found than requested
func (s Segmentation) Partial() bool {
	bounded := 0
	for _, b := range s.Blocks {
		if b.Bounded {
			bounded++
		}
	}
	return bounded < s.Requested
}

// Lines flattens the blocks in chronological order
func (s Segmentation) Lines() []string {
	var lines []string
	for _, b := range s.Blocks {
		lines = append(lines, b.Lines...)
	}
	return lines
}

// Segment returns the blocks of the count most recent commands in
// snapshot, oldest first. It scans backwards using prompt as the only
// delimiter:
//
//	>>> ls -al      <- prompt hit, everything below it is its output
//	.  user user
//	.. user user
//	>>> what last 1 <- first hit, the invocation of this tool, skipped
//
// Matching is a plain prefix test, so output that happens to start with
// the prompt text bounds a block too. When the snapshot holds fewer
// prompts than needed the scan runs out and the result is partial.
func Segment(snapshot []string, prompt string, count int) Segmentation {
	seg := Segmentation{Requested: max(count, 0)}
	if prompt == "" {
		return seg
	}

	var (
		blocks  []Block
		current []string
		hits    int
	)
	for i := len(snapshot) - 1; i >= 0; i-- {
		line := snapshot[i]
		if strings.HasPrefix(line, prompt) {
			hits++
			if hits > 1 {
				current = append(current, PromptMarker+strings.TrimPrefix(line, prompt))
				blocks = append(blocks, Block{Lines: reversed(current), Bounded: true})
				current = nil
			}
			if hits == seg.Requested+1 {
				break
			}
			continue
		}
		if hits > 0 {
			current = append(current, line)
		}
	}
	if len(current) > 0 {
		blocks = append(blocks, Block{Lines: reversed(current)})
	}

	seg.Blocks = reversed(blocks)
	return seg
}

func reversed[T any](items []T) []T {
	out := make([]T, len(items))
	for i, item := range items {
		out[len(items)-1-i] = item
	}
	return out
}
