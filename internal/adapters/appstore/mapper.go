package appstore

import "appstore_reviews/internal/domain"

func mapEntry(e Entry) domain.Review {
	return domain.Review{
		ID:      e.ID.Label,
		Score:   e.Rating.Label,
		Name:    e.Author.Name.Label,
		Title:   e.Title.Label,
		Text:    e.Content.Label,
		Updated: e.Updated.Label,
		Channel: domain.ChannelAppStore,
	}
}

func mapEntries(in Entries) []domain.Review {
	out := make([]domain.Review, 0, len(in))
	for _, e := range in {
		out = append(out, mapEntry(e))
	}
	return out
}
