package usecase

import (
	"context"
	"log"

	"poster/domain"
	"poster/interface/exporter"
)

// FeedInteractor rebuilds the post list by replaying every NewPost event; nothing is cached
// between loads.
type FeedInteractor struct {
}

func NewFeedInteractor() *FeedInteractor {
	return &FeedInteractor{}
}

func (interactor *FeedInteractor) Load(ctx context.Context, session *Session) ([]domain.Post, error) {
	poster, _, _, err := session.handles()
	if err != nil {
		return nil, err
	}
	if !session.IsCorrectNetwork() {
		return nil, domain.ErrorWrongNetwork
	}

	posts, err := poster.NewPosts(ctx, 0, nil)
	if err != nil {
		exporter.IncErrorCount()
		log.Printf("🔴 loading posts - %v\n", err.Error())
		return nil, err
	}

	posts = domain.NewestFirst(posts)
	session.setPosts(posts)
	return posts, nil
}

func (interactor *FeedInteractor) Filter(session *Session, tag string) []domain.Post {
	return domain.FilterByTag(session.Posts(), tag)
}
