// +build ignore

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type CameraEvent struct {
	SessionID string  `json:"session_id"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	Zoom      float64 `json:"zoom"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Rank      string  `json:"rank,omitempty"`
}

func main() {
	redisAddr := flag.String("redis", "localhost:6380", "Redis address for streams")
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

	// Тестовое событие (камера над центром Парижа)
	event := CameraEvent{
		SessionID: uuid.NewString(),
		Lat:       48.8566,
		Lon:       2.3522,
		Zoom:      13,
		Width:     1170,
		Height:    2532,
		Rank:      "priority",
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Fatalf("Failed to marshal event: %v", err)
	}

	// Публикация в стрим
	result, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: "stream:viewport:camera",
		Values: map[string]interface{}{
			"data": string(data),
		},
	}).Result()
	if err != nil {
		log.Fatalf("Failed to publish event: %v", err)
	}

	fmt.Printf("✅ Event published successfully!\n")
	fmt.Printf("   Stream: stream:viewport:camera\n")
	fmt.Printf("   Message ID: %s\n", result)
	fmt.Printf("   Session ID: %s\n", event.SessionID)
	fmt.Printf("   Camera: %.4f, %.4f @ zoom %.1f\n", event.Lat, event.Lon, event.Zoom)

	// Ожидание ответа
	fmt.Printf("\n⏳ Waiting for response in stream:viewport:results...\n")

	timeout := time.After(30 * time.Second)
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-timeout:
			fmt.Println("❌ Timeout waiting for response")
			return
		case <-ticker.C:
			results, err := client.XRead(ctx, &redis.XReadArgs{
				Streams: []string{"stream:viewport:results", "0"},
				Count:   10,
				Block:   0,
			}).Result()

			if err != nil && err != redis.Nil {
				continue
			}

			for _, stream := range results {
				for _, msg := range stream.Messages {
					dataStr, ok := msg.Values["data"].(string)
					if !ok {
						continue
					}

					var response map[string]interface{}
					if err := json.Unmarshal([]byte(dataStr), &response); err != nil {
						continue
					}

					if sessionID, ok := response["session_id"].(string); ok {
						if sessionID == event.SessionID {
							fmt.Printf("\n✅ Response received!\n")
							fmt.Printf("   Total: %v\n", response["total"])
							prettyJSON, _ := json.MarshalIndent(response, "", "  ")
							fmt.Printf("%s\n", prettyJSON)
							return
						}
					}
				}
			}
		}
	}
}
