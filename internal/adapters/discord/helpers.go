package discord

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/bwmarrin/discordgo"
)

func optStr(ic *discordgo.InteractionCreate, name string) (string, bool) {
	if v, ok := findOpt(ic, name, discordgo.ApplicationCommandOptionString); ok {
		return v.StringValue(), true
	}
	return "", false
}

func optInt(ic *discordgo.InteractionCreate, name string) (int, bool) {
	if v, ok := findOpt(ic, name, discordgo.ApplicationCommandOptionInteger); ok {
		return int(v.IntValue()), true
	}
	return 0, false
}

// Para opciones USER/ROLE/CHANNEL alcanza con el ID crudo.
func optUserID(ic *discordgo.InteractionCreate, name string) (string, bool) {
	return optRawID(ic, name, discordgo.ApplicationCommandOptionUser)
}

func optRoleID(ic *discordgo.InteractionCreate, name string) (string, bool) {
	return optRawID(ic, name, discordgo.ApplicationCommandOptionRole)
}

func optChannelID(ic *discordgo.InteractionCreate, name string) (string, bool) {
	return optRawID(ic, name, discordgo.ApplicationCommandOptionChannel)
}

func optRawID(ic *discordgo.InteractionCreate, name string, typ discordgo.ApplicationCommandOptionType) (string, bool) {
	if v, ok := findOpt(ic, name, typ); ok {
		if id, ok := v.Value.(string); ok {
			return id, true
		}
	}
	return "", false
}

func findOpt(ic *discordgo.InteractionCreate, name string, typ discordgo.ApplicationCommandOptionType) (*discordgo.ApplicationCommandInteractionDataOption, bool) {
	if ic.Type != discordgo.InteractionApplicationCommand {
		return nil, false
	}
	for _, o := range ic.ApplicationCommandData().Options {
		if o.Name == name && o.Type == typ {
			return o, true
		}
		// subcommand
		if o.Type == discordgo.ApplicationCommandOptionSubCommand {
			for _, so := range o.Options {
				if so.Name == name && so.Type == typ {
					return so, true
				}
			}
		}
	}
	return nil, false
}

func subcmdName(ic *discordgo.InteractionCreate) (string, bool) {
	if ic.Type != discordgo.InteractionApplicationCommand {
		return "", false
	}
	for _, o := range ic.ApplicationCommandData().Options {
		if o.Type == discordgo.ApplicationCommandOptionSubCommand {
			return o.Name, true
		}
	}
	return "", false
}

// fetchAvatar baja el avatar para la tarjeta; nil si falla (la tarjeta tiene fallback).
func fetchAvatar(ctx context.Context, url string) []byte {
	if url == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil
	}
	return data
}
