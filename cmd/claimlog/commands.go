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
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/claimlog/claimlog"
	"github.com/claimlog/claimlog/chat"
	"github.com/claimlog/claimlog/core"
	"github.com/claimlog/claimlog/storage"
	"github.com/claimlog/claimlog/websearch"
)

// printJSON writes a record or list to stdout, one indented document.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// argID returns the single positional id argument.
func argID(c *cli.Context) (core.ID, error) {
	if c.NArg() != 1 {
		return "", fmt.Errorf("expected exactly one id argument")
	}
	return core.ID(c.Args().First()), nil
}

func sortOrder(c *cli.Context) (storage.SortField, storage.Direction) {
	dir := storage.Descending
	if c.Bool("asc") {
		dir = storage.Ascending
	}
	return storage.SortField(c.String("sort")), dir
}

func orderAddCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	order, err := db.Orders().Add(context.Background(), &core.Order{
		RetailerName:    c.String("retailer"),
		OrderNumber:     c.String("order-number"),
		PurchaseDate:    core.Date(c.String("purchase-date")),
		ItemDescription: c.String("item"),
		PurchasePrice:   c.Float64("price"),
		ShippingCost:    c.Float64("shipping"),
		WarrantyPeriod:  c.String("warranty"),
		ClaimReason:     c.String("reason"),
	})
	if err != nil {
		return err
	}
	return printJSON(order)
}

func orderListCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	field, dir := sortOrder(c)
	orders, err := db.Orders().GetAllOrderedBy(context.Background(), field, dir)
	if err != nil {
		return err
	}
	return printJSON(orders)
}

func orderDeleteCommand(c *cli.Context) error {
	id, err := argID(c)
	if err != nil {
		return err
	}
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	return db.Orders().Delete(context.Background(), id)
}

func refundAddCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	refund, err := db.Refunds().Add(context.Background(), &core.Refund{
		RetailerName:  c.String("retailer"),
		Amount:        c.Float64("amount"),
		Method:        c.String("method"),
		Status:        core.Status(c.String("status")),
		DeliveredDate: core.Date(c.String("delivered")),
		Notes:         c.String("notes"),
	})
	if err != nil {
		return err
	}
	return printJSON(refund)
}

func refundListCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	field, dir := sortOrder(c)
	refunds, err := db.Refunds().GetAllOrderedBy(context.Background(), field, dir)
	if err != nil {
		return err
	}
	return printJSON(refunds)
}

func refundDeleteCommand(c *cli.Context) error {
	id, err := argID(c)
	if err != nil {
		return err
	}
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	return db.Refunds().Delete(context.Background(), id)
}

func claimAddCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	claim, err := db.WarrantyClaims().Add(context.Background(), &core.WarrantyClaim{
		RetailerName: c.String("retailer"),
		OrderId:      core.ID(c.String("order")),
		ItemInfo:     c.String("item"),
		Method:       c.String("method"),
		Status:       core.Status(c.String("status")),
		Notes:        c.String("notes"),
	})
	if err != nil {
		return err
	}
	return printJSON(claim)
}

func claimListCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := context.Background()
	if orderID := c.String("order"); orderID != "" {
		claims, err := db.WarrantyClaims().GetByOrder(ctx, core.ID(orderID))
		if err != nil {
			return err
		}
		return printJSON(claims)
	}

	field, dir := sortOrder(c)
	claims, err := db.WarrantyClaims().GetAllOrderedBy(ctx, field, dir)
	if err != nil {
		return err
	}
	return printJSON(claims)
}

func claimDeleteCommand(c *cli.Context) error {
	id, err := argID(c)
	if err != nil {
		return err
	}
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	return db.WarrantyClaims().Delete(context.Background(), id)
}

func contactAddCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	contact, err := db.Contacts().Add(context.Background(), &core.Contact{
		Name:           c.String("name"),
		SocialPlatform: c.String("platform"),
		Handle:         c.String("handle"),
		Role:           c.String("role"),
		Notes:          c.String("notes"),
	})
	if err != nil {
		return err
	}
	return printJSON(contact)
}

func contactListCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	contacts, err := db.Contacts().GetAll(context.Background())
	if err != nil {
		return err
	}
	return printJSON(contacts)
}

func contactDeleteCommand(c *cli.Context) error {
	id, err := argID(c)
	if err != nil {
		return err
	}
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	return db.Contacts().Delete(context.Background(), id)
}

func retailerAddCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	retailer, err := db.Retailers().Add(context.Background(), &core.Retailer{
		Name:                   c.String("name"),
		PhoneNumber:            c.String("phone"),
		Email:                  c.String("email"),
		Website:                c.String("website"),
		PreferredContactMethod: c.String("contact-method"),
	})
	if err != nil {
		return err
	}
	return printJSON(retailer)
}

func retailerListCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	retailers, err := db.Retailers().GetAll(context.Background())
	if err != nil {
		return err
	}
	return printJSON(retailers)
}

func retailerDeleteCommand(c *cli.Context) error {
	id, err := argID(c)
	if err != nil {
		return err
	}
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	return db.Retailers().Delete(context.Background(), id)
}

// documentFromFile builds an attachment reference for a local file:
// name, size and content type from the file itself, plus a payload
// fingerprint so a re-uploaded attachment can be spotted.
func documentFromFile(path string) (*core.Document, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	contentType := mime.TypeByExtension(filepath.Ext(path))
	if contentType == "" {
		contentType = http.DetectContentType(payload)
	}

	return &core.Document{
		Name:        filepath.Base(path),
		ContentType: contentType,
		Size:        int64(len(payload)),
		PayloadRef:  path,
		Fingerprint: core.Fingerprint(payload),
	}, nil
}

func docAddCommand(c *cli.Context) error {
	doc, err := documentFromFile(c.String("file"))
	if err != nil {
		return err
	}
	if name := c.String("name"); name != "" {
		doc.Name = name
	}
	doc.RefundId = core.ID(c.String("refund"))
	doc.WarrantyClaimId = core.ID(c.String("claim"))
	doc.OrderId = core.ID(c.String("order"))

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	added, err := db.Documents().Add(context.Background(), doc)
	if err != nil {
		return err
	}
	return printJSON(added)
}

func docListCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := context.Background()
	var docs []*core.Document
	switch {
	case c.String("refund") != "":
		docs, err = db.Documents().GetByRefund(ctx, core.ID(c.String("refund")))
	case c.String("claim") != "":
		docs, err = db.Documents().GetByWarrantyClaim(ctx, core.ID(c.String("claim")))
	case c.String("order") != "":
		docs, err = db.Documents().GetByOrder(ctx, core.ID(c.String("order")))
	default:
		docs, err = db.Documents().GetAll(ctx)
	}
	if err != nil {
		return err
	}
	return printJSON(docs)
}

func docDeleteCommand(c *cli.Context) error {
	id, err := argID(c)
	if err != nil {
		return err
	}
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	return db.Documents().Delete(context.Background(), id)
}

func commLogCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	comm, err := db.Communications().Add(context.Background(), &core.Communication{
		RefundId:        core.ID(c.String("refund")),
		WarrantyClaimId: core.ID(c.String("claim")),
		Message:         c.String("message"),
	})
	if err != nil {
		return err
	}
	return printJSON(comm)
}

func commListCommand(c *cli.Context) error {
	refundID := c.String("refund")
	claimID := c.String("claim")
	if (refundID == "") == (claimID == "") {
		return fmt.Errorf("exactly one of --refund and --claim is required")
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := context.Background()
	var comms []*core.Communication
	if refundID != "" {
		comms, err = db.Communications().GetByRefund(ctx, core.ID(refundID))
	} else {
		comms, err = db.Communications().GetByWarrantyClaim(ctx, core.ID(claimID))
	}
	if err != nil {
		return err
	}
	return printJSON(comms)
}

func exportCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	snapshot, err := db.ExportSnapshot(context.Background())
	if err != nil {
		return err
	}

	out := os.Stdout
	if name := c.String("out"); name != "-" {
		f, err := os.Create(name)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snapshot); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Exported %d records\n", snapshot.TotalRecords())
	return nil
}

func resetCommand(c *cli.Context) error {
	if !c.Bool("yes") {
		fmt.Fprint(os.Stderr, "This deletes every record in every collection. Type 'yes' to continue: ")
		scanner := bufio.NewScanner(os.Stdin)
		if !scanner.Scan() || strings.TrimSpace(scanner.Text()) != "yes" {
			fmt.Fprintln(os.Stderr, "Aborted.")
			return nil
		}
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.ClearAll(context.Background()); err != nil {
		return err
	}
	fmt.Fprintln(os.Stderr, "All collections cleared.")
	return nil
}

func chatCommand(c *cli.Context) error {
	retailer := c.String("retailer")

	opts := []chat.Option{}
	var db *claimlog.Database
	refundID := core.ID(c.String("refund"))
	claimID := core.ID(c.String("claim"))
	if refundID != "" || claimID != "" {
		var err error
		db, err = openDatabase(c)
		if err != nil {
			return err
		}
		defer db.Close()
		opts = append(opts, chat.WithTranscript(db.Communications(), refundID, claimID))
	}

	cfg := chat.NewConfig(
		chat.WithHost(c.String("host")),
		chat.WithModel(c.String("model")),
	)
	sim, err := chat.NewSimulator(cfg, opts...)
	if err != nil {
		return err
	}

	ctx := context.Background()
	fmt.Printf("Agent: %s\n", sim.Open(retailer))
	fmt.Println("Type your message, or 'exit' to hang up.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("You: ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "exit" || line == "quit" {
			break
		}
		if line == "" {
			continue
		}

		reply, err := sim.Reply(ctx, retailer, line)
		if err != nil {
			return err
		}
		fmt.Printf("Agent: %s\n", reply)
	}
	return scanner.Err()
}

func searchCommand(c *cli.Context) error {
	searcher, err := websearch.NewSearcher(websearch.NewConfig(
		websearch.WithRelayPrefix(c.String("relay")),
	))
	if err != nil {
		return err
	}

	ctx := context.Background()

	if c.Bool("sweep") {
		out, err := searcher.Sweep(ctx, websearch.QuickQueries, 4)
		if err != nil {
			return err
		}
		for _, sr := range out {
			fmt.Printf("== %s\n", sr.Query)
			if sr.Err != nil {
				fmt.Printf("   error: %v\n", sr.Err)
				continue
			}
			for _, r := range sr.Results {
				fmt.Printf("   %s\n   %s\n", r.Title, r.Link)
			}
		}
		return nil
	}

	query := strings.Join(c.Args().Slice(), " ")
	results, err := searcher.Search(ctx, query)
	if err != nil {
		return err
	}

	pager := websearch.NewPaginator(results)
	for pager.Page() < c.Int("page") {
		if !pager.Next() {
			break
		}
	}

	for _, r := range pager.Current() {
		fmt.Printf("%s\n%s\n%s\n\n", r.Title, r.Link, r.Snippet)
	}
	fmt.Fprintf(os.Stderr, "Page %d of %d (%d results)\n", pager.Page(), pager.TotalPages(), len(results))
	return nil
}
