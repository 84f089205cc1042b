package bot

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/faideww/fishing-journal/internal/content"
	"github.com/faideww/fishing-journal/internal/diary"
	"github.com/faideww/fishing-journal/internal/ratelimit"
	"github.com/faideww/fishing-journal/internal/spot"
)

type SavedSpots interface {
	Toggle(sp spot.Spot) bool
	Saved() []spot.Spot
	IsSaved(name string) bool
	Subscribe(fn func([]spot.Spot)) func()
}

type Journal interface {
	Add(e diary.Entry)
	Remove(id string)
	Entries() []diary.Entry
	Get(id string) (diary.Entry, bool)
	Subscribe(fn func([]diary.Entry)) func()
}

type Deps struct {
	Catalog  *spot.Catalog
	Saved    SavedSpots
	Journal  Journal
	WriteLim *ratelimit.Limiter
	ReadLim  *ratelimit.Limiter
	Log      *zap.Logger
}

type module struct {
	Deps
	picker *spot.Picker
}

func newModule(deps Deps) *module {
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	deps.Log = deps.Log.Named("bot")
	return &module{Deps: deps, picker: spot.NewPicker(deps.Catalog, nil)}
}

// reply is what a command produces before it is sent to Discord.
type reply struct {
	content   string
	embeds    []*discordgo.MessageEmbed
	ephemeral bool
}

const listLimit = 10

func Setup(session *discordgo.Session, appId, scopeGuild string, deps Deps) (func(), error) {
	m := newModule(deps)

	created, err := session.ApplicationCommandBulkOverwrite(appId, scopeGuild, commandDefs())
	if err != nil {
		return nil, fmt.Errorf("failed to register commands: %w", err)
	}

	for _, c := range created {
		m.Log.Info("command active", zap.String("name", c.Name), zap.String("description", c.Description))
	}

	remove := session.AddHandler(m.onInteraction)
	stopStatus := m.watchStatus(func(status string) {
		if err := session.UpdateCustomStatus(status); err != nil {
			m.logREST("status update failed", err)
		}
	})

	return func() {
		remove()
		stopStatus()
	}, nil
}

// watchStatus calls update with a fresh status line whenever the saved spots
// or the journal change. Updates run on their own goroutine so a slow
// gateway never holds up a mutation; bursts collapse into one update.
func (m *module) watchStatus(update func(string)) (stop func()) {
	changed := make(chan struct{}, 1)
	poke := func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	}
	cancelSaved := m.Saved.Subscribe(func([]spot.Spot) { poke() })
	cancelJournal := m.Journal.Subscribe(func([]diary.Entry) { poke() })

	done := make(chan struct{})
	exited := make(chan struct{})
	go func() {
		defer close(exited)
		for {
			select {
			case <-changed:
				update(statusLine(len(m.Saved.Saved()), len(m.Journal.Entries())))
			case <-done:
				return
			}
		}
	}()
	poke()

	return func() {
		cancelSaved()
		cancelJournal()
		close(done)
		<-exited
	}
}

func statusLine(saved, catches int) string {
	return fmt.Sprintf("★ %s · 📓 %s", plural(saved, "saved spot"), plural(catches, "catch"))
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	if strings.HasSuffix(noun, "ch") {
		return fmt.Sprintf("%d %ses", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

func (m *module) onInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	userId := ""
	if i.Member != nil && i.Member.User != nil {
		userId = i.Member.User.ID
	} else if i.User != nil {
		userId = i.User.ID
	}

	data := i.ApplicationCommandData()
	name, opts := flatten(data)
	r := m.run(userId, name, opts)

	flags := discordgo.MessageFlags(0)
	if r.ephemeral {
		flags = discordgo.MessageFlagsEphemeral
	}
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: r.content,
			Embeds:  r.embeds,
			Flags:   flags,
		},
	})
	if err != nil {
		m.logREST("respond failed", err)
	}
}

// flatten turns "journal add title:..." into ("journal add", {"title": ...}).
func flatten(data discordgo.ApplicationCommandInteractionData) (string, map[string]any) {
	name := data.Name
	opts := data.Options
	if len(opts) == 1 && opts[0].Type == discordgo.ApplicationCommandOptionSubCommand {
		name += " " + opts[0].Name
		opts = opts[0].Options
	}
	out := make(map[string]any, len(opts))
	for _, o := range opts {
		out[o.Name] = o.Value
	}
	return name, out
}

func (m *module) run(userId, name string, opts map[string]any) reply {
	lim, bucket := m.ReadLim, "read"
	switch name {
	case "save", "journal add", "journal remove":
		lim, bucket = m.WriteLim, "write"
	}
	if lim != nil {
		if ok, rem := lim.Try(userId, bucket); !ok {
			return ephemeral(fmt.Sprintf("⏳ Easy there… try again in %s.", pretty(rem)))
		}
	}

	switch name {
	case "spots":
		return m.handleSpots(str(opts, "season"))
	case "spot":
		return m.handleSpot(str(opts, "name"), str(opts, "other"))
	case "save":
		return m.handleSave(str(opts, "name"))
	case "saved":
		return m.handleSaved()
	case "forecast":
		return m.handleForecast(str(opts, "season"))
	case "tips":
		return m.handleTips(str(opts, "id"))
	case "journal add":
		return m.handleJournalAdd(opts)
	case "journal show":
		return m.handleJournalShow(str(opts, "id"))
	case "journal list":
		return m.handleJournalList()
	case "journal remove":
		return m.handleJournalRemove(str(opts, "id"))
	}
	return ephemeral("Unknown command.")
}

func (m *module) handleSpots(seasonKey string) reply {
	season, err := spot.ParseSeason(seasonKey)
	if err != nil {
		return ephemeral(fmt.Sprintf("Unknown season '%s'", seasonKey))
	}

	spots := m.Catalog.BySeason(season)
	if len(spots) == 0 {
		return reply{content: fmt.Sprintf("No spots listed for %s yet.", season.Title())}
	}

	desc := strings.Builder{}
	for _, sp := range spots {
		mark := ""
		if m.Saved.IsSaved(sp.Name) {
			mark = " ★"
		}
		fmt.Fprintf(&desc, "**%s**%s\n%s\n", sp.Name, mark, sp.Fish)
	}

	return reply{embeds: []*discordgo.MessageEmbed{{
		Title:       fmt.Sprintf("🎣 %s spots", season.Title()),
		Description: desc.String(),
		Color:       colorForSeason(season),
	}}}
}

// handleSpot shows name, or with other set, a different spot from that
// season.
func (m *module) handleSpot(name, other string) reply {
	sp, ok := m.Catalog.Find(name)
	if !ok {
		return ephemeral(fmt.Sprintf("Unknown spot '%s'", name))
	}
	if other != "" {
		season, err := spot.ParseSeason(other)
		if err != nil {
			return ephemeral(fmt.Sprintf("Unknown season '%s'", other))
		}
		sp = m.picker.Other(season, sp)
	}
	return reply{embeds: []*discordgo.MessageEmbed{spotEmbed(sp, m.Saved.IsSaved(sp.Name))}}
}

func (m *module) handleSave(name string) reply {
	sp, ok := m.Catalog.Find(name)
	if !ok {
		return ephemeral(fmt.Sprintf("Unknown spot '%s'", name))
	}

	if m.Saved.Toggle(sp) {
		return reply{content: fmt.Sprintf("★ Saved **%s**", sp.Name)}
	}
	return reply{content: fmt.Sprintf("Removed **%s** from saved spots", sp.Name)}
}

func (m *module) handleSaved() reply {
	saved := m.Saved.Saved()
	if len(saved) == 0 {
		return reply{content: "No saved spots yet - use `/save` to bookmark one!"}
	}

	desc := strings.Builder{}
	for idx, sp := range saved {
		fmt.Fprintf(&desc, "**#%d** %s — %s\n", idx+1, sp.Name, sp.Address)
	}
	return reply{embeds: []*discordgo.MessageEmbed{{
		Title:       "★ Saved spots",
		Description: desc.String(),
		Color:       0xf1c40f,
	}}}
}

func (m *module) handleForecast(seasonKey string) reply {
	season, err := spot.ParseSeason(seasonKey)
	if err != nil {
		return ephemeral(fmt.Sprintf("Unknown season '%s'", seasonKey))
	}
	fc, err := content.ForecastFor(season)
	if err != nil {
		return ephemeral(err.Error())
	}

	embed := &discordgo.MessageEmbed{
		Title:       fc.Title,
		Description: fc.Text,
		Color:       colorForSeason(season),
	}
	if best, ok := fc.BestSpot(m.Catalog); ok {
		embed.Fields = []*discordgo.MessageEmbedField{
			{Name: "Best spot", Value: best.Name},
			{Name: "Fish", Value: best.Fish},
		}
	}
	return reply{embeds: []*discordgo.MessageEmbed{embed}}
}

func (m *module) handleTips(id string) reply {
	if id != "" {
		tip, ok := content.TipByID(id)
		if !ok {
			return ephemeral(fmt.Sprintf("Unknown tip '%s'", id))
		}
		return reply{embeds: []*discordgo.MessageEmbed{{
			Title:       "💡 " + tip.Title,
			Description: tip.Text,
			Color:       0x2ecc71,
		}}}
	}

	fields := make([]*discordgo.MessageEmbedField, 0, len(content.Tips()))
	for _, t := range content.Tips() {
		fields = append(fields, &discordgo.MessageEmbedField{Name: t.Title, Value: t.Text})
	}
	return reply{embeds: []*discordgo.MessageEmbed{{
		Title:  "💡 Fishing tips",
		Fields: fields,
		Color:  0x2ecc71,
	}}}
}

func (m *module) handleJournalAdd(opts map[string]any) reply {
	date, err := diary.ParseDate(str(opts, "date"))
	if err != nil {
		return ephemeral(userError(err))
	}

	var coords *spot.Coords
	lat, hasLat := opts["lat"].(float64)
	lon, hasLon := opts["lon"].(float64)
	if hasLat != hasLon {
		return ephemeral("Give both lat and lon, or neither.")
	}
	if hasLat {
		coords = &spot.Coords{Lat: lat, Lon: lon}
	}

	e, err := diary.NewEntry(str(opts, "title"), str(opts, "desc"), date, coords)
	if err != nil {
		if errors.Is(err, diary.ErrInvalidEntry) {
			return ephemeral("A catch needs a title.")
		}
		m.Log.Error("failed to build entry", zap.Error(err))
		return ephemeral("Could not add that entry.")
	}

	m.Journal.Add(e)
	return reply{content: fmt.Sprintf("📓 Logged **%s** on %s (id `%s`)", e.Title, e.Date, e.ID)}
}

func (m *module) handleJournalList() reply {
	entries := m.Journal.Entries()
	if len(entries) == 0 {
		return reply{content: "Your journal is empty - use `/journal add` after your next trip!"}
	}

	embeds := make([]*discordgo.MessageEmbed, 0, listLimit)
	for idx, e := range entries {
		if idx == listLimit {
			break
		}
		embeds = append(embeds, entryEmbed(e))
	}
	r := reply{embeds: embeds}
	if len(entries) > listLimit {
		r.content = fmt.Sprintf("Showing the latest %d of %d entries.", listLimit, len(entries))
	}
	return r
}

// handleJournalShow replies with the shareable text of one entry.
func (m *module) handleJournalShow(id string) reply {
	e, ok := m.Journal.Get(id)
	if !ok {
		return ephemeral(fmt.Sprintf("No entry with id `%s`.", id))
	}
	msg := content.ShareEntry(e)
	if e.Coords != nil {
		msg += "\n" + spot.MapURL(*e.Coords, "")
	}
	return reply{content: msg}
}

func (m *module) handleJournalRemove(id string) reply {
	e, ok := m.Journal.Get(id)
	m.Journal.Remove(id)
	if !ok {
		return ephemeral(fmt.Sprintf("No entry with id `%s`.", id))
	}
	return reply{content: fmt.Sprintf("🗑️ Removed **%s**", e.Title)}
}

func spotEmbed(sp spot.Spot, saved bool) *discordgo.MessageEmbed {
	title := sp.Name
	if saved {
		title = "★ " + title
	}
	return &discordgo.MessageEmbed{
		Title:       title,
		URL:         spot.MapURL(sp.Coords, sp.Name),
		Description: sp.Desc,
		Color:       0x006b8f,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Address", Value: orDash(sp.Address)},
			{Name: "Fish", Value: orDash(sp.Fish), Inline: true},
			{Name: "Coordinates", Value: sp.Coords.String(), Inline: true},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: "Use /save to bookmark this spot"},
	}
}

func entryEmbed(e diary.Entry) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       e.Title,
		Description: e.Desc,
		Color:       0x00344b,
		Footer:      &discordgo.MessageEmbedFooter{Text: e.Date + " · " + e.ID},
	}
	if e.Coords != nil {
		embed.URL = spot.MapURL(*e.Coords, "")
	}
	return embed
}

func colorForSeason(s spot.Season) int {
	switch s {
	case spot.Spring:
		return 0x2ecc71 // green
	case spot.Summer:
		return 0xf1c40f // gold
	case spot.Autumn:
		return 0xe67e22 // orange
	default:
		return 0x3498db // blue
	}
}

func ephemeral(msg string) reply { return reply{content: msg, ephemeral: true} }

func userError(err error) string {
	msg := err.Error()
	return strings.TrimPrefix(msg, diary.ErrInvalidEntry.Error()+": ")
}

func str(opts map[string]any, key string) string {
	v, _ := opts[key].(string)
	return v
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func pretty(d time.Duration) string {
	// mm:ss
	if d < 0 {
		d = 0
	}
	m := int(d / time.Minute)
	s := int((d % time.Minute) / time.Second)
	return fmt.Sprintf("%d:%02d", m, s)
}

func (m *module) logREST(msg string, err error) {
	if rerr, ok := err.(*discordgo.RESTError); ok && rerr.Message != nil {
		m.Log.Warn(msg, zap.Int("code", rerr.Message.Code), zap.String("msg", rerr.Message.Message))
	} else {
		m.Log.Warn(msg, zap.Error(err))
	}
}
