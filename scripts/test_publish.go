//go:build ignore

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/heritage-catalog/internal/domain"
)

func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address for streams")
	group := flag.String("group", "moderation-audit-workers", "Audit worker consumer group")
	contributionID := flag.Int64("contribution", 1, "Contribution ID for the test event")
	siteID := flag.Int64("site", 1, "Site ID for the test event")
	flag.Parse()

	client := redis.NewClient(&redis.Options{
		Addr: *redisAddr,
	})
	defer client.Close()

	ctx := context.Background()

	// Проверка подключения
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	event := domain.ContributionModeratedEvent{
		EventID:        uuid.New(),
		ContributionID: *contributionID,
		SiteID:         *siteID,
		FromStatus:     domain.ContributionPending,
		ToStatus:       domain.ContributionApproved,
		OccurredAt:     time.Now().UTC(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Fatalf("Failed to marshal event: %v", err)
	}

	msgID, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: domain.StreamContributionModerated,
		Values: map[string]interface{}{
			"data": string(data),
		},
	}).Result()
	if err != nil {
		log.Fatalf("Failed to publish event: %v", err)
	}

	fmt.Printf("Event published\n")
	fmt.Printf("   Stream: %s\n", domain.StreamContributionModerated)
	fmt.Printf("   Message ID: %s\n", msgID)
	fmt.Printf("   Event ID: %s\n", event.EventID)
	fmt.Printf("   Contribution: %d (%s -> %s)\n", event.ContributionID, event.FromStatus, event.ToStatus)

	fmt.Printf("\nWaiting for group %q to acknowledge...\n", *group)

	timeout := time.After(30 * time.Second)
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-timeout:
			fmt.Println("Timeout waiting for the audit worker")
			return
		case <-ticker.C:
			if acknowledged(ctx, client, *group, msgID) {
				fmt.Println("Message delivered and acknowledged by the audit worker")
				return
			}
		}
	}
}

// acknowledged - сообщение доставлено группе и отсутствует в pending
func acknowledged(ctx context.Context, client *redis.Client, group, msgID string) bool {
	groups, err := client.XInfoGroups(ctx, domain.StreamContributionModerated).Result()
	if err != nil {
		return false
	}

	for _, g := range groups {
		if g.Name != group {
			continue
		}
		if g.LastDeliveredID < msgID {
			return false
		}
		pending, err := client.XPendingExt(ctx, &redis.XPendingExtArgs{
			Stream: domain.StreamContributionModerated,
			Group:  group,
			Start:  msgID,
			End:    msgID,
			Count:  1,
		}).Result()
		return err == nil && len(pending) == 0
	}
	return false
}
