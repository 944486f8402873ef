// Command makeadmin promotes the user with the given email to the admin
// role. The user must log in again afterwards: the role claim is baked
// into the token at login time.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/mohanmeesala2005/EventHub/config"
	"github.com/mohanmeesala2005/EventHub/models"
	"github.com/mohanmeesala2005/EventHub/store"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: makeadmin <email>")
		os.Exit(1)
	}
	email := os.Args[1]

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

	user, err := store.NewMongoUserStore(db).SetRole(ctx, email, models.RoleAdmin)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			fmt.Fprintf(os.Stderr, "user with email %q not found\n", email)
		} else {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}

	fmt.Printf("promoted %s (@%s) to admin\n", user.Name, user.Username)
	fmt.Println("note: the user must log out and log in again for the new role to take effect")
}
