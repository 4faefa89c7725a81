package cmd

import (
	"context"
	"fmt"
	"log"
	"math/rand/v2"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/plazahq/plaza/internal/floor"
	"github.com/plazahq/plaza/internal/notify"
	"github.com/plazahq/plaza/internal/services/plaza"
	"github.com/plazahq/plaza/internal/session"
)

var botCount int

var botCmd = &cobra.Command{
	Use:   "bot [FLOOR]",
	Short: "Run wandering bots against a floor, for load and demo purposes",
	Args:  cobra.MaximumNArgs(1),
	Run:   runBots,
}

func init() {
	rootCmd.AddCommand(botCmd)
	botCmd.Flags().IntVarP(&botCount, "count", "n", 3, "number of bots to run")
}

func runBots(_ *cobra.Command, args []string) {
	server := viper.GetString("server")
	floorID := viper.GetString("floor")
	if len(args) == 1 {
		floorID = args[0]
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var wg sync.WaitGroup
	for i := 0; i < botCount; i++ {
		name := fmt.Sprintf("bot_%d_%d", time.Now().Unix()%100000, i)
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := runBot(ctx, server, floorID, name); err != nil {
				log.Printf("%s: %v", name, err)
			}
		}()
	}
	wg.Wait()
}

func runBot(ctx context.Context, server, floorID, name string) error {
	const password = "wanderer123"

	anon := plaza.NewClient("http://"+server, "")
	if _, err := plaza.Register(anon, name, password); err != nil {
		return fmt.Errorf("registering: %w", err)
	}
	login, err := plaza.Login(anon, name, password)
	if err != nil {
		return fmt.Errorf("logging in: %w", err)
	}

	sess := session.New(session.Config{
		URL:    fmt.Sprintf("ws://%s/floor/%s", server, floorID),
		Origin: "http://" + server,
		Token:  login.Token,
		SelfID: login.UserID,
		Sink:   notify.Discard{},
	})
	if err := sess.Connect(ctx); err != nil {
		return fmt.Errorf("joining floor: %w", err)
	}
	defer sess.Disconnect()

	width := viper.GetFloat64("viewport.width")
	height := viper.GetFloat64("viewport.height")
	fl := floor.New(sess, login.UserID, width, height, notify.Discard{})
	log.Printf("%s wandering on floor %s", name, floorID)

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()
	nextAction := time.Now().Add(randomDelay())

	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			fl.Tick(now)
			if now.Before(nextAction) {
				continue
			}
			nextAction = now.Add(randomDelay())
			botAct(fl, sess, now, width, height)
		}
	}
}

// botAct mostly wanders, occasionally lobs something at whoever else is
// around.
func botAct(fl *floor.Floor, sess *session.Session, now time.Time, width, height float64) {
	others := sess.Store().List()
	roll := rand.Float64()
	switch {
	case roll < 0.70 || len(others) == 0:
		fl.MoveTo(rand.Float64()*width, rand.Float64()*height, now)
	case roll < 0.85:
		fl.ThrowTomato(others[rand.IntN(len(others))].ID)
	case roll < 0.95:
		fl.ThrowPlane(others[rand.IntN(len(others))].ID)
	default:
		fl.Poke(others[rand.IntN(len(others))].ID)
	}
}

func randomDelay() time.Duration {
	return 2*time.Second + time.Duration(rand.IntN(3000))*time.Millisecond
}
