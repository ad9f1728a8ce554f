package firestore

import (
	"context"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"settleup/internal/domain/card"
)

const (
	collUsers = "users"
	collCards = "creditCards"
)

// CardRepository implements card.Repository on Cloud Firestore. Cards
// live in a per-user subcollection so ownership is structural.
type CardRepository struct {
	client *firestore.Client
}

func NewCardRepository(client *firestore.Client) *CardRepository {
	return &CardRepository{client: client}
}

func (r *CardRepository) cards(userID string) *firestore.CollectionRef {
	return r.client.Collection(collUsers).Doc(userID).Collection(collCards)
}

func (r *CardRepository) ListByUser(ctx context.Context, userID string) ([]card.Card, error) {
	iter := r.cards(userID).Documents(ctx)
	defer iter.Stop()

	cards, err := collectCards(iter)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	return cards, nil
}

func (r *CardRepository) GetByID(ctx context.Context, userID, cardID string) (*card.Card, error) {
	doc, err := r.cards(userID).Doc(cardID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, card.ErrCardNotFound
		}
		return nil, fmt.Errorf("failed to get card: %w", err)
	}

	c, err := decodeCard(doc)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CardRepository) Create(ctx context.Context, userID string, c card.Card) (*card.Card, error) {
	ref := r.cards(userID).NewDoc()
	if _, err := ref.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to create card: %w", err)
	}

	c.ID = ref.ID
	return &c, nil
}

func (r *CardRepository) Delete(ctx context.Context, userID, cardID string) error {
	// Existence is checked so a bad ID surfaces instead of silently
	// succeeding.
	if _, err := r.GetByID(ctx, userID, cardID); err != nil {
		return err
	}

	if _, err := r.cards(userID).Doc(cardID).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete card: %w", err)
	}
	return nil
}

func (r *CardRepository) UpdateNotes(ctx context.Context, userID, cardID, notes string) error {
	_, err := r.cards(userID).Doc(cardID).Update(ctx, []firestore.Update{
		{Path: "notes", Value: notes},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return card.ErrCardNotFound
		}
		return fmt.Errorf("failed to update notes: %w", err)
	}
	return nil
}

// Watch streams full replacement snapshots of the user's collection.
// The subscription ends when the returned stop function is called, ctx
// is cancelled, or the stream fails.
func (r *CardRepository) Watch(ctx context.Context, userID string, fn card.SnapshotFunc) (card.StopFunc, error) {
	ctx, cancel := context.WithCancel(ctx)
	snapshots := r.cards(userID).Snapshots(ctx)

	go func() {
		defer snapshots.Stop()
		for {
			snap, err := snapshots.Next()
			if err != nil {
				if status.Code(err) != codes.Canceled {
					log.Printf("Card snapshot stream for user %s ended: %v", userID, err)
				}
				return
			}

			cards, err := collectCards(snap.Documents)
			if err != nil {
				log.Printf("Failed to decode card snapshot for user %s: %v", userID, err)
				continue
			}
			fn(cards)
		}
	}()

	return card.StopFunc(cancel), nil
}

func collectCards(iter *firestore.DocumentIterator) ([]card.Card, error) {
	cards := []card.Card{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}

		c, err := decodeCard(doc)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

func decodeCard(doc *firestore.DocumentSnapshot) (card.Card, error) {
	var c card.Card
	if err := doc.DataTo(&c); err != nil {
		return card.Card{}, fmt.Errorf("failed to decode card %s: %w", doc.Ref.ID, err)
	}
	c.ID = doc.Ref.ID
	return c, nil
}
