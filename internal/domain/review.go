package domain

// ChannelAppStore labels every review fetched from the App Store feed.
const ChannelAppStore = "App Store"

// Review is the flat, storefront-agnostic record written to CSV.
// Every field is kept verbatim from the feed (no date/number parsing).
type Review struct {
	ID      string
	Score   string
	Name    string
	Title   string
	Text    string
	Updated string
	Channel string
}

// Record returns the fields in export column order.
func (r Review) Record() []string {
	return []string{r.ID, r.Score, r.Name, r.Title, r.Text, r.Updated, r.Channel}
}

// App is one configured application: store id + display name.
type App struct {
	ID   string
	Name string
}
