// Package bookshelf embeds the book index directly in a Go program,
// talking to Redis with RediSearch and RedisJSON without the HTTP layer.
//
//	client, _ := bookshelf.New(ctx, bookshelf.WithRedis("localhost:6379", ""))
//	defer client.Close()
//	_, _ = client.EnsureIndex(ctx)
//
//	id, _ := client.Add(ctx, bookshelf.Book{
//	    Title:       "The Hobbit",
//	    Author:      "J. R. R. Tolkien",
//	    WordCount:   95022,
//	    PublishDate: time.Date(1937, 9, 21, 0, 0, 0, 0, time.UTC),
//	})
//
//	books, _ := client.Query(ctx, bookshelf.Query{Author: "Tolkien", MinWordCount: 50000})
package bookshelf
