package cmd

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/plazahq/plaza/internal/floor"
	"github.com/plazahq/plaza/internal/notify"
	"github.com/plazahq/plaza/internal/session"
)

var joinCmd = &cobra.Command{
	Use:   "join [FLOOR]",
	Short: "Join a floor and stay on it until interrupted",
	Args:  cobra.MaximumNArgs(1),
	Run:   joinFloor,
}

func init() {
	rootCmd.AddCommand(joinCmd)
}

// tickInterval paces the render loop. Movement and projectiles interpolate
// off wall-clock time, so the rate only bounds visual smoothness.
const tickInterval = 33 * time.Millisecond

func joinFloor(_ *cobra.Command, args []string) {
	server := viper.GetString("server")
	floorID := viper.GetString("floor")
	if len(args) == 1 {
		floorID = args[0]
	}

	token, who, err := loadIdentity()
	if err != nil {
		log.Fatal(err)
	}

	sess := session.New(session.Config{
		URL:    fmt.Sprintf("ws://%s/floor/%s", server, floorID),
		Origin: "http://" + server,
		Token:  token,
		SelfID: who.UserID,
		Sink:   notify.LogSink{},
		OnStatus: func(st session.Status) {
			log.Printf("connection: %s", st)
		},
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := sess.Connect(ctx); err != nil {
		log.Fatalf("error joining floor %s: %v", floorID, err)
	}
	defer sess.Disconnect()

	width := viper.GetFloat64("viewport.width")
	height := viper.GetFloat64("viewport.height")
	fl := floor.New(sess, who.UserID, width, height, notify.LogSink{})

	log.Printf("on floor %s as %s, ctrl-c to leave", floorID, who.Username)

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	lastCount := -1
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			fl.Tick(now)
			if n := sess.Store().Len(); n != lastCount {
				log.Printf("%d other(s) on the floor", n)
				lastCount = n
			}
		}
	}
}
