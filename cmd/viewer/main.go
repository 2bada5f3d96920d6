// Viewer is a read-only CLI over a live store: it dumps accounts and message
// records without disturbing a running server.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"
)

type messageRecord struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"sender_id"`
	ReceiverID string    `json:"receiver_id"`
	Text       string    `json:"text"`
	Image      string    `json:"image"`
	Seen       bool      `json:"seen"`
	CreatedAt  time.Time `json:"created_at"`
}

type userRecord struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Bio      string `json:"bio"`
}

func main() {
	dbPath := flag.String("db", "/tmp/quickchat/badger", "Path to badger DB")
	prefix := flag.String("prefix", "msg:", "Prefix to scan (msg: or user:id:)")
	flag.Parse()

	db, err := openDB(*dbPath)
	if err != nil {
		log.Fatal("Error while opening Badger: ", err)
	}
	defer db.Close()

	banner := color.New(color.BgBlack, color.FgGreen).Render(" quickchat store viewer (read-only) ")
	fmt.Println(banner)

	switch {
	case strings.HasPrefix(*prefix, "user:"):
		err = dumpUsers(db, *prefix)
	default:
		err = dumpMessages(db, *prefix)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func newTable(headers []string) *tablewriter.Table {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader(headers)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	return table
}

func dumpMessages(db *badger.DB, prefix string) error {
	table := newTable([]string{"ID", "Time", "From", "To", "Seen", "Text"})

	err := scan(db, prefix, func(key string, value []byte) error {
		// Skip the id index, the record itself lives under the msg: key.
		if strings.HasPrefix(key, "msgid:") {
			return nil
		}
		var record messageRecord
		if err := json.Unmarshal(value, &record); err != nil {
			fmt.Printf("Error unmarshaling key %s: %v\n", key, err)
			return nil
		}

		text := record.Text
		if text == "" && record.Image != "" {
			text = "[image] " + record.Image
		}
		table.Append([]string{
			shorten(record.ID),
			record.CreatedAt.Format("15:04:05"),
			shorten(record.SenderID),
			shorten(record.ReceiverID),
			fmt.Sprintf("%t", record.Seen),
			text,
		})
		return nil
	})
	if err != nil {
		return err
	}

	table.Render()
	return nil
}

func dumpUsers(db *badger.DB, prefix string) error {
	table := newTable([]string{"ID", "Email", "Full Name", "Bio"})

	err := scan(db, prefix, func(key string, value []byte) error {
		var record userRecord
		if err := json.Unmarshal(value, &record); err != nil {
			fmt.Printf("Error unmarshaling key %s: %v\n", key, err)
			return nil
		}
		table.Append([]string{shorten(record.ID), record.Email, record.FullName, record.Bio})
		return nil
	})
	if err != nil {
		return err
	}

	table.Render()
	return nil
}

func scan(db *badger.DB, prefix string, fn func(key string, value []byte) error) error {
	return db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefixBytes := []byte(prefix)
		for it.Seek(prefixBytes); it.ValidForPrefix(prefixBytes); it.Next() {
			item := it.Item()
			err := item.Value(func(v []byte) error {
				return fn(string(item.Key()), v)
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func shorten(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func openDB(path string) (*badger.DB, error) {
	// BypassLockGuard allows opening while the server holds the lock.
	opts := badger.DefaultOptions(path).
		WithReadOnly(true).
		WithLogger(nil).
		WithBypassLockGuard(true).
		WithValueLogFileSize(10 * 1024 * 1024)

	return badger.Open(opts)
}
