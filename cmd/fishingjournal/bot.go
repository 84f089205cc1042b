package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/spf13/cobra"

	"github.com/faideww/fishing-journal/internal/bot"
	"github.com/faideww/fishing-journal/internal/ratelimit"
)

func botCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "bot",
		Short: "Run the Discord bot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			config := a.config
			if err := config.validateBot(); err != nil {
				return err
			}

			session, err := discordgo.New("Bot " + config.DiscordToken)
			if err != nil {
				return fmt.Errorf("failed to start session: %w", err)
			}

			if err := session.Open(); err != nil {
				return fmt.Errorf("failed to open session connection: %w", err)
			}
			defer session.Close()

			appId := session.State.User.ID

			writeLim := ratelimit.NewLimiter(
				time.Duration(config.CooldownWriteMin)*time.Second,
				time.Duration(config.CooldownWriteMax)*time.Second,
				nil,
			)
			readLim := ratelimit.NewLimiter(
				time.Duration(config.CooldownReadMin)*time.Second,
				time.Duration(config.CooldownReadMax)*time.Second,
				nil,
			)
			teardown, err := bot.Setup(session, appId, config.DevGuild, bot.Deps{
				Catalog:  a.catalog,
				Saved:    a.saved,
				Journal:  a.journal,
				WriteLim: writeLim,
				ReadLim:  readLim,
				Log:      a.log,
			})
			if err != nil {
				return fmt.Errorf("failed to setup bot: %w", err)
			}
			defer teardown()

			prune := time.NewTicker(10 * time.Minute)
			defer prune.Stop()

			a.log.Info("Bot is running")
			stop := make(chan os.Signal, 1)
			signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(stop)
			for {
				select {
				case <-stop:
					return nil
				case <-cmd.Context().Done():
					return nil
				case <-prune.C:
					writeLim.Prune()
					readLim.Prune()
				}
			}
		},
	}
}
