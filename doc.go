// Package coresendergo is a Go client for the Coresender transactional email sending API.
//
// It builds messages, batches them, posts them as one JSON array with HTTP Basic authentication
// and decodes the per-message results.
//
// Key subpackages:
//
//	github.com/coresender/coresender-go/pkg/mail      - Address, Message, Batch and the response model
//	github.com/coresender/coresender-go/pkg/client    - HTTP client (AddToBatch, SendSimpleEmail, Execute)
//	github.com/coresender/coresender-go/pkg/config    - Environment configuration and credential fallback
//	github.com/coresender/coresender-go/pkg/telemetry - Logger and tracer setup
//
// Example Usage:
//
//	package main
//
//	import (
//		"context"
//		"fmt"
//
//		"github.com/coresender/coresender-go/pkg/client"
//		"github.com/coresender/coresender-go/pkg/config"
//		"github.com/coresender/coresender-go/pkg/mail"
//	)
//
//	func main() {
//		ctx := context.Background()
//
//		// Empty fields fall back to CORESENDER_SENDING_API_ID / CORESENDER_SENDING_API_KEY
//		c, err := client.NewFromCredentials(ctx, config.Credentials{})
//		if err != nil {
//			panic(err)
//		}
//
//		msg, err := mail.NewMessage(
//			mail.NamedAddr("jean.luc@example.com", "Jean-Luc Picard"),
//			[]mail.Address{mail.NamedAddr("geordi@example.com", "Geordi La Forge")},
//			"I need engines",
//			mail.WithBodyText("Geordi, I need engines, now!"),
//			mail.WithTrackOpens(true),
//		)
//		if err != nil {
//			panic(err)
//		}
//
//		res, err := c.SendSimpleEmail(ctx, msg)
//		if err != nil {
//			panic(err)
//		}
//		if !res.HasBody() {
//			fmt.Println(res.StatusText, res.ParsingError)
//			return
//		}
//		for _, d := range res.Body.Data {
//			fmt.Println(d.MessageID, d.Status)
//		}
//	}
package coresendergo
