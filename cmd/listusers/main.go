// Command listusers prints every account in the database with its role.
// Handy for finding the email to pass to makeadmin.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/mohanmeesala2005/EventHub/config"
	"github.com/mohanmeesala2005/EventHub/models"
	"github.com/mohanmeesala2005/EventHub/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	client, db, err := config.ConnectDB(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	defer client.Disconnect(ctx)

	users, err := store.NewMongoUserStore(db).FindAll(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	if len(users) == 0 {
		fmt.Println("no users found; sign up through the app first")
		return
	}

	fmt.Printf("found %d user(s):\n\n", len(users))
	for i, u := range users {
		marker := ""
		if u.Role == models.RoleAdmin {
			marker = " (admin)"
		}
		fmt.Printf("%d. %s (@%s)%s\n   email: %s\n   role:  %s\n", i+1, u.Name, u.Username, marker, u.Email, u.Role)
	}
	fmt.Println("\nto promote a user: go run ./cmd/makeadmin <email>")
}
