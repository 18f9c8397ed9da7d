package main

import (
	"bufio"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	auction "auction-house/internal/auctionService"
	"auction-house/internal/network"
	"auction-house/internal/seed"
	"auction-house/internal/server"
	"auction-house/utils"

	"github.com/spf13/pflag"
)

const usageMsg = `auction-house [-h] [-j N] [-t M] [-l FILE] [--http ADDR] PORT AUCTION_FILENAME

-h, --help       Displays this help menu and exits
-j, --jobs N     Number of worker threads. Defaults to 2.
-t, --tick M     M seconds between time ticks. If not specified, a tick
                 fires on each line of input from stdin.
-l, --log FILE   File to write the operation log to. Defaults to stdout.
    --http ADDR  Optional listen address for the read-only HTTP status
                 API (e.g. ":8080"). Disabled when empty.
PORT             Port number to listen on
AUCTION_FILENAME File to read auction item information from at startup
`

func main() {
	var (
		workers  = pflag.IntP("jobs", "j", 2, "number of worker threads")
		tickSecs = pflag.IntP("tick", "t", 0, "seconds between ticks (0 = tick on stdin input)")
		logFile  = pflag.StringP("log", "l", "", "operation log file")
		httpAddr = pflag.String("http", "", "status API listen address")
		help     = pflag.BoolP("help", "h", false, "show usage")
	)
	pflag.Parse()

	if *help {
		fmt.Print(usageMsg)
		return
	}
	args := pflag.Args()
	if len(args) != 2 || *workers < 1 {
		fmt.Fprint(os.Stderr, usageMsg)
		os.Exit(1)
	}
	port, seedFile := args[0], args[1]

	if *logFile != "" {
		if err := utils.SetOutputFile(*logFile); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
			os.Exit(1)
		}
	}

	ticker := newTicker(*tickSecs)
	engine := auction.NewEngine(*workers, ticker)

	count, err := seed.Load(seedFile, engine.Auctions())
	if err != nil {
		utils.Fatal("failed to load auction file", map[string]any{"file": seedFile, "error": err.Error()})
	}
	utils.Info("auctions seeded", map[string]any{"file": seedFile, "count": count})

	engine.Start()

	tcpServer := network.NewServer(":"+port, engine)
	go func() {
		if err := tcpServer.Start(); err != nil {
			utils.Fatal("failed to start server", map[string]any{"port": port, "error": err.Error()})
		}
	}()

	if *httpAddr != "" {
		router := server.SetupRouter(engine)
		go func() {
			if err := router.Run(*httpAddr); err != nil {
				utils.Error("status API stopped", map[string]any{"addr": *httpAddr, "error": err.Error()})
			}
		}()
	}

	// Hard teardown on SIGINT: close the listener and all sessions,
	// stop the ticker, release the workers.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	fmt.Println("Shutting down server")
	tcpServer.Stop()
	engine.Stop()
}

// newTicker picks the engine's clock source: a wall-clock interval when
// -t is given, otherwise one tick per line read from stdin.
func newTicker(tickSecs int) auction.Ticker {
	if tickSecs > 0 {
		return auction.NewIntervalTicker(time.Duration(tickSecs) * time.Second)
	}

	st := auction.NewSignalTicker()
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			if !st.Trigger() {
				return
			}
		}
	}()
	return st
}
