package bot

import (
	"github.com/bwmarrin/discordgo"

	"github.com/faideww/fishing-journal/internal/content"
	"github.com/faideww/fishing-journal/internal/spot"
)

func seasonChoices() []*discordgo.ApplicationCommandOptionChoice {
	out := make([]*discordgo.ApplicationCommandOptionChoice, 0, 4)
	for _, s := range spot.Seasons() {
		out = append(out, &discordgo.ApplicationCommandOptionChoice{Name: s.Title(), Value: string(s)})
	}
	return out
}

func tipChoices() []*discordgo.ApplicationCommandOptionChoice {
	tips := content.Tips()
	out := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(tips))
	for _, t := range tips {
		out = append(out, &discordgo.ApplicationCommandOptionChoice{Name: t.Title, Value: t.ID})
	}
	return out
}

func commandDefs() []*discordgo.ApplicationCommand {
	seasonOpt := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "season",
		Description: "Season",
		Required:    true,
		Choices:     seasonChoices(),
	}
	nameOpt := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "name",
		Description: "Spot name",
		Required:    true,
	}

	return []*discordgo.ApplicationCommand{
		{Name: "spots", Description: "List fishing spots for a season", Options: []*discordgo.ApplicationCommandOption{seasonOpt}},
		{
			Name:        "spot",
			Description: "Show a fishing spot",
			Options: []*discordgo.ApplicationCommandOption{
				nameOpt,
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "other",
					Description: "Show a different spot from this season instead",
					Choices:     seasonChoices(),
				},
			},
		},
		{Name: "save", Description: "Save or unsave a spot", Options: []*discordgo.ApplicationCommandOption{nameOpt}},
		{Name: "saved", Description: "Show saved spots"},
		{Name: "forecast", Description: "Seasonal fishing forecast", Options: []*discordgo.ApplicationCommandOption{seasonOpt}},
		{
			Name:        "tips",
			Description: "Fishing tips",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionString, Name: "id", Description: "Show one tip", Choices: tipChoices()},
			},
		},
		{
			Name:        "journal",
			Description: "Fishing journal",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "add",
					Description: "Add a catch",
					Options: []*discordgo.ApplicationCommandOption{
						{Type: discordgo.ApplicationCommandOptionString, Name: "title", Description: "What did you catch?", Required: true},
						{Type: discordgo.ApplicationCommandOptionString, Name: "desc", Description: "Notes"},
						{Type: discordgo.ApplicationCommandOptionString, Name: "date", Description: "dd/mm/yyyy, defaults to today"},
						{Type: discordgo.ApplicationCommandOptionNumber, Name: "lat", Description: "Latitude"},
						{Type: discordgo.ApplicationCommandOptionNumber, Name: "lon", Description: "Longitude"},
					},
				},
				{Type: discordgo.ApplicationCommandOptionSubCommand, Name: "list", Description: "List catches"},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "show",
					Description: "Show a catch ready to share",
					Options: []*discordgo.ApplicationCommandOption{
						{Type: discordgo.ApplicationCommandOptionString, Name: "id", Description: "Entry id", Required: true},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "remove",
					Description: "Remove a catch",
					Options: []*discordgo.ApplicationCommandOption{
						{Type: discordgo.ApplicationCommandOptionString, Name: "id", Description: "Entry id", Required: true},
					},
				},
			},
		},
	}
}
