package solve

import (
	"time"

	"github.com/careerdesk/staffsched/internal/config"
	"github.com/careerdesk/staffsched/internal/domain"
)

// Improve runs a bounded, deterministic hill-climbing pass over the
// initial grid: an accept-if-better loop that scans its neighborhood in a
// fixed lexicographic order instead of a randomized walk, so the result
// depends on nothing but the inputs. The move
// set is narrow — swap which FD-qualified employee covers a given FD
// block — because it is the only move that is always feasibility-
// preserving by construction (the two employees are interchangeable:
// same slots, both already FD-qualified and available).
func Improve(g *Grid, n *domain.Normalized, p *domain.Precomputed, cfg *config.Config, deadline time.Time) {
	for iter := 0; iter < 200; iter++ {
		if time.Now().After(deadline) {
			return
		}
		if !improveOnePass(g, n, p, cfg) {
			return
		}
	}
}

// improveOnePass tries, in (day, block, candidate) lexicographic order,
// to reassign one FD block to a different qualified employee who is
// farther from their target; it applies the first strictly improving swap
// found and returns true, or false if no improving swap exists.
func improveOnePass(g *Grid, n *domain.Normalized, p *domain.Precomputed, cfg *config.Config) bool {
	fd := n.QualifiedEmployees(n.FrontDeskRole)
	for d := 0; d < domain.NumDays; d++ {
		day := domain.Day(d)
		for _, holder := range n.Employees {
			blocks := g.Blocks[holder.Key][day]
			for bi, b := range blocks {
				if b.Role != n.FrontDeskRole || b.Forced {
					continue
				}
				holderDelta := deviation(g, holder)
				// Giving the block away must not drop the holder under
				// their hard weekly minimum.
				if g.WorkedSlots(holder.Key)-b.Len() < relaxedLowerBound(n, p, cfg, holder) {
					continue
				}
				for _, cand := range fd {
					if cand.Key == holder.Key || g.HasBlock(cand.Key, day) {
						continue
					}
					if !available(cand, day, b.Start, b.End) {
						continue
					}
					if g.WorkedSlots(cand.Key)+b.Len() > cand.MaxSlots {
						continue
					}
					candDelta := deviation(g, cand)
					if candDelta <= holderDelta {
						continue
					}
					// Swap: candidate takes the block, holder loses it.
					newBlocks := make([]Block, 0, len(blocks)-1)
					for j, bb := range blocks {
						if j != bi {
							newBlocks = append(newBlocks, bb)
						}
					}
					days := g.Blocks[holder.Key]
					days[day] = newBlocks
					g.Blocks[holder.Key] = days
					g.AddBlock(cand.Key, day, b)
					return true
				}
			}
		}
	}
	return false
}

func deviation(g *Grid, e *domain.Employee) int {
	d := e.TargetSlots - g.WorkedSlots(e.Key)
	if d < 0 {
		return -d
	}
	return d
}

func available(e *domain.Employee, day domain.Day, start, end int) bool {
	for t := start; t < end; t++ {
		if e.Unavailable[day][t] {
			return false
		}
	}
	return true
}
