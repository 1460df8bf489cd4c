//go:build datagen_connections
// +build datagen_connections

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/cantdoitbye/backend-sub007/src/helper/env"
	"github.com/cantdoitbye/backend-sub007/src/infra/postgres"

	"github.com/go-faker/faker/v4"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Gera arestas V1 fake em massa para popular um ambiente de testes de
// carga. Cada bundle é um usuário com um punhado de conexões para
// usuários sorteados de um pool fixo de ids.

type ConnectionRow struct {
	InitiatorID      string
	RecipientID      string
	Status           string
	BucketType       string
	RelationLabel    string
	SubRelationLabel string
}

var (
	statuses = []string{"Received", "Accepted", "Accepted", "Accepted", "Rejected", "Cancelled"}
	buckets  = []string{"Inner", "Outer", "Outer", "Universal"}
	labels   = [][2]string{
		{"Friend", "friend"},
		{"Friend", "close friend"},
		{"Friend", "acquaintance"},
		{"Relatives", "sibling"},
		{"Professional", "colleague"},
		{"Professional", "mentor"},
	}
)

func newSQLClient() (*pgxpool.Pool, error) {
	dbHost := env.MustGetString("DB_WRITE_HOST")
	dbPort := env.GetString("DB_WRITE_PORT", "5432")
	dbname := env.MustGetString("DB_NAME")
	dbUser := env.MustGetString("DB_USER")
	dbPassword := env.MustGetString("DB_PASSWORD")
	maxConnections := 50
	return postgres.NewPostgresClient(dbHost, dbPort, dbname, dbUser, dbPassword, maxConnections)
}

func main() {
	rand.Seed(time.Now().UnixNano())

	numUsers := flag.Int("users", -1, "Número de usuários a gerar. Use -1 para infinito.")
	connectionsPerUser := flag.Int("connections-per-user", 20, "Conexões por usuário")
	bulkSize := flag.Int("bulk-size", 500, "Linhas por INSERT")
	numConsumers := flag.Int("consumers", 8, "Workers de escrita")
	userPoolSize := flag.Int("user-pool", 10000, "Tamanho do pool de destinatários")
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := newSQLClient()
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer db.Close()

	// Pool de destinatários pré-gerado para que as arestas se cruzem.
	recipientPool := make([]string, *userPoolSize)
	for i := range recipientPool {
		recipientPool[i] = "user-" + faker.UUIDHyphenated()
	}

	dataChan := make(chan ConnectionRow, (*bulkSize)*(*numConsumers)*2)

	var wg sync.WaitGroup
	var totalProcessed, totalErrors int64
	startTime := time.Now()

	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				processed := atomic.LoadInt64(&totalProcessed)
				errors := atomic.LoadInt64(&totalErrors)
				elapsed := time.Since(startTime)
				rate := float64(processed) / elapsed.Seconds()

				fmt.Printf("📊 Processed: %d | Errors: %d | Rate: %.1f/s | Elapsed: %v\n",
					processed, errors, rate, elapsed.Round(time.Second))
			}
		}
	}()

	for i := 0; i < *numConsumers; i++ {
		wg.Add(1)
		go consumer(ctx, &wg, db, dataChan, *bulkSize, &totalProcessed, &totalErrors)
	}

	wg.Add(1)
	go producer(ctx, &wg, dataChan, recipientPool, *numUsers, *connectionsPerUser)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\n🛑 Shutdown signal received, stopping...")
		cancel()
	}()

	wg.Wait()

	elapsed := time.Since(startTime)
	processed := atomic.LoadInt64(&totalProcessed)
	errors := atomic.LoadInt64(&totalErrors)

	fmt.Printf("\n🏁 Seeding finished!\n")
	fmt.Printf("📊 Total processed: %d\n", processed)
	fmt.Printf("❌ Total errors: %d\n", errors)
	fmt.Printf("⏱️  Total time: %v\n", elapsed.Round(time.Second))
}

func producer(ctx context.Context, wg *sync.WaitGroup, dataChan chan<- ConnectionRow, recipientPool []string, numUsers, connectionsPerUser int) {
	defer wg.Done()
	defer close(dataChan)

	isInfinite := numUsers == -1
	userCount := 0

	for isInfinite || userCount < numUsers {
		select {
		case <-ctx.Done():
			fmt.Println("Producer stopping.")
			return
		default:
			initiatorID := "user-" + faker.UUIDHyphenated()

			for i := 0; i < connectionsPerUser; i++ {
				label := labels[rand.Intn(len(labels))]
				row := ConnectionRow{
					InitiatorID:      initiatorID,
					RecipientID:      recipientPool[rand.Intn(len(recipientPool))],
					Status:           statuses[rand.Intn(len(statuses))],
					BucketType:       buckets[rand.Intn(len(buckets))],
					RelationLabel:    label[0],
					SubRelationLabel: label[1],
				}

				select {
				case dataChan <- row:
				case <-ctx.Done():
					return
				}
			}

			userCount++
			if userCount%1000 == 0 {
				fmt.Printf("Generated %d users\n", userCount)
			}
		}
	}
}

func consumer(ctx context.Context, wg *sync.WaitGroup, db *pgxpool.Pool, dataChan <-chan ConnectionRow, bulkSize int, totalProcessed, totalErrors *int64) {
	defer wg.Done()

	batch := make([]ConnectionRow, 0, bulkSize)

	flush := func() {
		if len(batch) == 0 {
			return
		}
		if err := insertBatch(ctx, db, batch); err != nil {
			log.Printf("insert batch failed: %v", err)
			atomic.AddInt64(totalErrors, int64(len(batch)))
		} else {
			atomic.AddInt64(totalProcessed, int64(len(batch)))
		}
		batch = batch[:0]
	}

	for {
		select {
		case <-ctx.Done():
			flush()
			return
		case row, ok := <-dataChan:
			if !ok {
				flush()
				return
			}
			batch = append(batch, row)
			if len(batch) >= bulkSize {
				flush()
			}
		}
	}
}

func insertBatch(ctx context.Context, db *pgxpool.Pool, batch []ConnectionRow) error {
	initiators := make([]string, len(batch))
	recipients := make([]string, len(batch))
	statusValues := make([]string, len(batch))
	bucketValues := make([]string, len(batch))
	relationValues := make([]string, len(batch))
	subRelationValues := make([]string, len(batch))

	for i, row := range batch {
		initiators[i] = row.InitiatorID
		recipients[i] = row.RecipientID
		statusValues[i] = row.Status
		bucketValues[i] = row.BucketType
		relationValues[i] = row.RelationLabel
		subRelationValues[i] = row.SubRelationLabel
	}

	insertSQL := `
		INSERT INTO connections (initiator_id, recipient_id, status, bucket_type, relation_label, sub_relation_label)
		SELECT unnest($1::text[]), unnest($2::text[]), unnest($3::text[]), unnest($4::text[]), unnest($5::text[]), unnest($6::text[])
	`

	_, err := db.Exec(ctx, insertSQL, initiators, recipients, statusValues, bucketValues, relationValues, subRelationValues)
	if err != nil {
		return fmt.Errorf("failed to insert connections: %w", err)
	}

	return nil
}
