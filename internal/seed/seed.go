// Package seed loads the startup auction file: groups of four lines,
// item name, then duration in ticks, then buy-now price, then an
// ignored separator line.
package seed

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	model "auction-house/internal/models"
	"auction-house/internal/registry"
)

// Creator is the synthetic user that owns seeded auctions. It never
// logs in, so seeded sales settle only the winner's side.
const Creator = "AuctionHouse"

// Load reads the seed file and inserts its auctions as active listings.
// It returns the number inserted.
func Load(path string, auctions *registry.AuctionRegistry) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("seed: open %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	var lines []string
	for scanner.Scan() {
		lines = append(lines, strings.TrimRight(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return 0, fmt.Errorf("seed: read %s: %w", path, err)
	}

	count := 0
	for i := 0; i+2 < len(lines); i += 4 {
		itemName := lines[i]
		duration, derr := strconv.ParseUint(strings.TrimSpace(lines[i+1]), 10, 32)
		buyNow, berr := strconv.ParseUint(strings.TrimSpace(lines[i+2]), 10, 64)
		if derr != nil || berr != nil || duration < 1 || itemName == "" {
			return count, fmt.Errorf("seed: malformed auction group at line %d", i+1)
		}

		auctions.Insert(&model.Auction{
			ItemName:       itemName,
			Creator:        Creator,
			BuyNowPrice:    buyNow,
			RemainingTicks: uint32(duration),
		})
		count++
	}
	return count, nil
}
