// Copyright 2025 The claimlog Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/claimlog/claimlog"
)

func main() {
	app := &cli.App{
		Name:  "claimlog",
		Usage: "Track consumer disputes: orders, refunds, warranty claims and the paper trail around them",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "db",
				Aliases: []string{"d"},
				Usage:   "Path to the database directory",
				Value:   "./claimlog_db",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:  "order",
				Usage: "Manage tracked purchases",
				Subcommands: []*cli.Command{
					{
						Name:   "add",
						Usage:  "Record a purchase",
						Action: orderAddCommand,
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "retailer", Usage: "Retailer name", Required: true},
							&cli.StringFlag{Name: "order-number", Usage: "Retailer order number"},
							&cli.StringFlag{Name: "purchase-date", Usage: "Purchase date (YYYY-MM-DD)"},
							&cli.StringFlag{Name: "item", Usage: "Item description"},
							&cli.Float64Flag{Name: "price", Usage: "Purchase price"},
							&cli.Float64Flag{Name: "shipping", Usage: "Shipping cost"},
							&cli.StringFlag{Name: "warranty", Usage: "Warranty period, free text"},
							&cli.StringFlag{Name: "reason", Usage: "Why the purchase is being tracked"},
						},
					},
					{
						Name:   "list",
						Usage:  "List purchases",
						Action: orderListCommand,
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "sort", Usage: "Sort field (purchaseDate, retailerName, createdAt)", Value: "purchaseDate"},
							&cli.BoolFlag{Name: "asc", Usage: "Sort ascending instead of descending"},
						},
					},
					{
						Name:      "rm",
						Usage:     "Delete a purchase and its dependent claims and documents",
						ArgsUsage: "<id>",
						Action:    orderDeleteCommand,
					},
				},
			},
			{
				Name:  "refund",
				Usage: "Manage refund requests",
				Subcommands: []*cli.Command{
					{
						Name:   "add",
						Usage:  "Open a refund request",
						Action: refundAddCommand,
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "retailer", Usage: "Retailer name", Required: true},
							&cli.Float64Flag{Name: "amount", Usage: "Amount claimed"},
							&cli.StringFlag{Name: "method", Usage: "How the request was raised"},
							&cli.StringFlag{Name: "status", Usage: "Status (Planned, In Progress, Complete)", Value: "Planned"},
							&cli.StringFlag{Name: "delivered", Usage: "Delivery date (YYYY-MM-DD)"},
							&cli.StringFlag{Name: "notes", Usage: "Free-text notes"},
						},
					},
					{
						Name:   "list",
						Usage:  "List refund requests",
						Action: refundListCommand,
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "sort", Usage: "Sort field (createdAt, status, retailerName)", Value: "createdAt"},
							&cli.BoolFlag{Name: "asc", Usage: "Sort ascending instead of descending"},
						},
					},
					{
						Name:      "rm",
						Usage:     "Delete a refund request and its logged communications",
						ArgsUsage: "<id>",
						Action:    refundDeleteCommand,
					},
				},
			},
			{
				Name:  "claim",
				Usage: "Manage warranty claims",
				Subcommands: []*cli.Command{
					{
						Name:   "add",
						Usage:  "Open a warranty claim",
						Action: claimAddCommand,
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "retailer", Usage: "Retailer name", Required: true},
							&cli.StringFlag{Name: "order", Usage: "Id of the tracked order, if any"},
							&cli.StringFlag{Name: "item", Usage: "Item under claim"},
							&cli.StringFlag{Name: "method", Usage: "How the claim was raised"},
							&cli.StringFlag{Name: "status", Usage: "Status (Planned, In Progress, Complete)", Value: "Planned"},
							&cli.StringFlag{Name: "notes", Usage: "Free-text notes"},
						},
					},
					{
						Name:   "list",
						Usage:  "List warranty claims",
						Action: claimListCommand,
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "sort", Usage: "Sort field (createdAt, status, retailerName)", Value: "createdAt"},
							&cli.BoolFlag{Name: "asc", Usage: "Sort ascending instead of descending"},
							&cli.StringFlag{Name: "order", Usage: "Only claims raised against this order id"},
						},
					},
					{
						Name:      "rm",
						Usage:     "Delete a warranty claim and its logged communications",
						ArgsUsage: "<id>",
						Action:    claimDeleteCommand,
					},
				},
			},
			{
				Name:  "contact",
				Usage: "Manage support contacts",
				Subcommands: []*cli.Command{
					{
						Name:   "add",
						Usage:  "Record a contact",
						Action: contactAddCommand,
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "name", Usage: "Contact name", Required: true},
							&cli.StringFlag{Name: "platform", Usage: "Social platform"},
							&cli.StringFlag{Name: "handle", Usage: "Handle on that platform"},
							&cli.StringFlag{Name: "role", Usage: "Role, e.g. support agent"},
							&cli.StringFlag{Name: "notes", Usage: "Free-text notes"},
						},
					},
					{
						Name:   "list",
						Usage:  "List contacts, newest first",
						Action: contactListCommand,
					},
					{
						Name:      "rm",
						Usage:     "Delete a contact",
						ArgsUsage: "<id>",
						Action:    contactDeleteCommand,
					},
				},
			},
			{
				Name:  "retailer",
				Usage: "Manage retailer reference data",
				Subcommands: []*cli.Command{
					{
						Name:   "add",
						Usage:  "Add a retailer",
						Action: retailerAddCommand,
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "name", Usage: "Retailer name", Required: true},
							&cli.StringFlag{Name: "phone", Usage: "Support phone number"},
							&cli.StringFlag{Name: "email", Usage: "Support email"},
							&cli.StringFlag{Name: "website", Usage: "Website"},
							&cli.StringFlag{Name: "contact-method", Usage: "Preferred contact method"},
						},
					},
					{
						Name:   "list",
						Usage:  "List retailers by name",
						Action: retailerListCommand,
					},
					{
						Name:      "rm",
						Usage:     "Delete a retailer (records that name it are left alone)",
						ArgsUsage: "<id>",
						Action:    retailerDeleteCommand,
					},
				},
			},
			{
				Name:  "doc",
				Usage: "Manage attachment references",
				Subcommands: []*cli.Command{
					{
						Name:   "add",
						Usage:  "Register a document from a file",
						Action: docAddCommand,
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Usage: "Path to the payload file", Required: true},
							&cli.StringFlag{Name: "name", Usage: "Document name; defaults to the file name"},
							&cli.StringFlag{Name: "refund", Usage: "Refund id the document backs"},
							&cli.StringFlag{Name: "claim", Usage: "Warranty claim id the document backs"},
							&cli.StringFlag{Name: "order", Usage: "Order id the document backs"},
						},
					},
					{
						Name:   "list",
						Usage:  "List documents, optionally for one refund, claim or order",
						Action: docListCommand,
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "refund", Usage: "Only documents backing this refund id"},
							&cli.StringFlag{Name: "claim", Usage: "Only documents backing this warranty claim id"},
							&cli.StringFlag{Name: "order", Usage: "Only documents backing this order id"},
						},
					},
					{
						Name:      "rm",
						Usage:     "Delete a document reference",
						ArgsUsage: "<id>",
						Action:    docDeleteCommand,
					},
				},
			},
			{
				Name:  "comm",
				Usage: "Log and review communications",
				Subcommands: []*cli.Command{
					{
						Name:   "log",
						Usage:  "Log a message against a refund or a warranty claim",
						Action: commLogCommand,
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "refund", Usage: "Refund id"},
							&cli.StringFlag{Name: "claim", Usage: "Warranty claim id"},
							&cli.StringFlag{Name: "message", Aliases: []string{"m"}, Usage: "Message text", Required: true},
						},
					},
					{
						Name:   "list",
						Usage:  "List messages for a refund or a warranty claim, oldest first",
						Action: commListCommand,
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "refund", Usage: "Refund id"},
							&cli.StringFlag{Name: "claim", Usage: "Warranty claim id"},
						},
					},
				},
			},
			{
				Name:   "export",
				Usage:  "Export all collections to a JSON snapshot file",
				Action: exportCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "out",
						Aliases: []string{"o"},
						Usage:   "Output file, - for stdout",
						Value:   "-",
					},
				},
			},
			{
				Name:   "reset",
				Usage:  "Delete every record in every collection",
				Action: resetCommand,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "yes",
						Usage: "Skip the confirmation prompt",
					},
				},
			},
			{
				Name:   "chat",
				Usage:  "Rehearse a support conversation before the real call",
				Action: chatCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "retailer", Usage: "Retailer the rehearsal is against", Required: true},
					&cli.StringFlag{Name: "host", Usage: "OpenAI-compatible chat endpoint; empty means local templated replies"},
					&cli.StringFlag{Name: "model", Usage: "Model name for remote generation", Value: "qwen2.5:3b"},
					&cli.StringFlag{Name: "refund", Usage: "Record the transcript against this refund id"},
					&cli.StringFlag{Name: "claim", Usage: "Record the transcript against this warranty claim id"},
				},
			},
			{
				Name:      "search",
				Usage:     "Search the web for consumer-rights information",
				ArgsUsage: "<query terms>",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "relay", Usage: "Forwarding relay prefix for restricted networks"},
					&cli.IntFlag{Name: "page", Usage: "Results page to print", Value: 1},
					&cli.BoolFlag{Name: "sweep", Usage: "Run the built-in quick-search queries instead of the arguments"},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// openDatabase opens the store named by the global --db flag.
func openDatabase(c *cli.Context) (*claimlog.Database, error) {
	db, err := claimlog.NewDatabase(c.String("db"))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
