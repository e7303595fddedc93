package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"

	"github.com/joho/godotenv"

	"github.com/oksasatya/go-ddd-blog/config"
	"github.com/oksasatya/go-ddd-blog/internal/application"
	"github.com/oksasatya/go-ddd-blog/internal/container"
	"github.com/oksasatya/go-ddd-blog/pkg/apperror"
	"github.com/oksasatya/go-ddd-blog/pkg/helpers"
	"github.com/oksasatya/go-ddd-blog/pkg/validation"
)

// seed creates a demo user with one blog and a comment thread. Notifications
// are turned off so seeding never queues emails.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	cfg.RabbitMQURL = ""
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env, cfg.LogLevel)
	validation.Init()

	ctx := context.Background()
	app, err := container.New(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("failed to start: %v", err)
	}
	defer app.Close()

	const password = "password123"
	author := signupOrLogin(ctx, app.AuthService, "demo@example.com", password)
	reader := signupOrLogin(ctx, app.AuthService, "reader@example.com", password)

	mine, err := app.BlogService.ListMine(ctx, author.User.ID)
	if err != nil {
		log.Fatalf("list blogs: %v", err)
	}
	if len(mine) > 0 {
		fmt.Printf("demo data already present: blog=%s\n", mine[0].ID)
		return
	}
	cover, err := placeholderPNG()
	if err != nil {
		log.Fatalf("render cover: %v", err)
	}
	blog, err := app.BlogService.Create(ctx, author.User.ID, application.CreateBlogInput{
		Title:       "Hello, blog",
		Description: "The first post on this instance.",
		Image: &application.Upload{
			Filename:    "cover.png",
			ContentType: "image/png",
			Size:        int64(cover.Len()),
			Body:        cover,
		},
	})
	if err != nil {
		log.Fatalf("seed blog: %v", err)
	}
	comment, err := app.CommentService.Create(ctx, reader.User.ID, application.CreateCommentInput{BlogID: blog.ID, Content: "Nice first post!"})
	if err != nil {
		log.Fatalf("seed comment: %v", err)
	}
	if _, err := app.CommentService.AddReply(ctx, author.User.ID, comment.ID, "Thanks for reading."); err != nil {
		log.Fatalf("seed reply: %v", err)
	}
	fmt.Printf("seeded users=%s,%s password=%s blog=%s comment=%s\n",
		author.User.Email, reader.User.Email, password, blog.ID, comment.ID)
}

func signupOrLogin(ctx context.Context, auth *application.AuthService, email, password string) *application.AuthResult {
	res, err := auth.Signup(ctx, application.SignupInput{Email: email, Password: password})
	if errors.Is(err, apperror.ErrDuplicateUser) {
		res, err = auth.Login(ctx, application.LoginInput{Email: email, Password: password})
	}
	if err != nil {
		log.Fatalf("seed user %s: %v", email, err)
	}
	return res
}

func placeholderPNG() (*bytes.Buffer, error) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			img.Set(x, y, color.RGBA{R: 0x33, G: 0x66, B: 0x99, A: 0xff})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return &buf, nil
}
