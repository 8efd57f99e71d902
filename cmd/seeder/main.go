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

// Seeder fills a database with demo records for manual testing.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/claimlog/claimlog"
	"github.com/claimlog/claimlog/core"
)

var demoOrders = []core.Order{
	{
		RetailerName:    "Amazon",
		OrderNumber:     "112-8842291-0076123",
		PurchaseDate:    "2025-03-14",
		ItemDescription: "Mechanical keyboard, brown switches",
		PurchasePrice:   89.99,
		ShippingCost:    0,
		WarrantyPeriod:  "2 years",
		ClaimReason:     "Space bar double-registers",
	},
	{
		RetailerName:    "Best Buy",
		OrderNumber:     "BBY01-806412338829",
		PurchaseDate:    "2025-05-02",
		ItemDescription: "27 inch 1440p monitor",
		PurchasePrice:   329.00,
		ShippingCost:    12.50,
		WarrantyPeriod:  "1 year",
		ClaimReason:     "Dead pixel cluster, top left corner",
	},
	{
		RetailerName:    "Walmart",
		OrderNumber:     "2001447-55810022",
		PurchaseDate:    "2025-07-19",
		ItemDescription: "Cordless vacuum",
		PurchasePrice:   149.00,
		WarrantyPeriod:  "90 days",
	},
}

var demoRefunds = []core.Refund{
	{
		RetailerName:  "Amazon",
		Amount:        89.99,
		Method:        "Online return center",
		Status:        "In Progress",
		DeliveredDate: "2025-03-18",
		Notes:         "Return label printed, drop-off pending",
	},
	{
		RetailerName: "Target",
		Amount:       24.99,
		Method:       "In store",
		Status:       "Complete",
		Notes:        "Refunded to original card",
	},
}

var demoClaims = []core.WarrantyClaim{
	{
		RetailerName: "Best Buy",
		ItemInfo:     "27 inch 1440p monitor",
		Method:       "Phone",
		Status:       "Planned",
		Notes:        "Dead pixels covered under panel warranty",
	},
}

var demoContacts = []core.Contact{
	{
		Name:           "Dana R.",
		SocialPlatform: "Twitter",
		Handle:         "@BestBuySupport",
		Role:           "Escalation agent",
		Notes:          "Responded within an hour last time",
	},
}

var demoMessages = []string{
	"You: Hello, I'm following up on my return from last week.",
	"Agent: Thanks for reaching out. The return is being processed.",
	"You: Can you confirm the refund amount?",
	"Agent: The full purchase price will be refunded to your card.",
}

var dbPath = flag.String("db", "./claimlog_db", "database directory")

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()
}

func main() {
	db, err := claimlog.NewDatabase(*dbPath)
	if err != nil {
		panic(err)
	}
	defer db.Close()

	ctx := context.Background()

	for i := range demoOrders {
		order, err := db.Orders().Add(ctx, &demoOrders[i])
		if err != nil {
			panic(err)
		}
		slog.Info("seeded order", "id", order.Id, "retailer", order.RetailerName)
	}

	var firstRefund core.ID
	for i := range demoRefunds {
		refund, err := db.Refunds().Add(ctx, &demoRefunds[i])
		if err != nil {
			panic(err)
		}
		if firstRefund == "" {
			firstRefund = refund.Id
		}
		slog.Info("seeded refund", "id", refund.Id, "retailer", refund.RetailerName)
	}

	for i := range demoClaims {
		claim, err := db.WarrantyClaims().Add(ctx, &demoClaims[i])
		if err != nil {
			panic(err)
		}
		slog.Info("seeded warranty claim", "id", claim.Id, "retailer", claim.RetailerName)
	}

	for i := range demoContacts {
		contact, err := db.Contacts().Add(ctx, &demoContacts[i])
		if err != nil {
			panic(err)
		}
		slog.Info("seeded contact", "id", contact.Id, "name", contact.Name)
	}

	for _, message := range demoMessages {
		comm, err := db.Communications().Add(ctx, &core.Communication{
			RefundId: firstRefund,
			Message:  message,
		})
		if err != nil {
			panic(err)
		}
		slog.Info("seeded communication", "id", comm.Id)
	}
}
