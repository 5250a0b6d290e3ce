package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type seedOptions struct {
	campaignCount    int
	participantCount int
	dropCollections  bool
	adminID          string
	randomSeed       int64
}

var sampleHeaders = []string{"社員番号", "氏名", "Email", "部署", "緊急連絡先"}

var sampleNames = []string{
	"佐藤 一郎", "鈴木 花子", "高橋 健太", "田中 美咲", "渡辺 大輔",
	"伊藤 彩", "山本 翔", "中村 千尋", "小林 颯太", "加藤 里奈",
}

var themes = []string{"blue", "red", "purple", "orange", "green"}

func main() {
	_ = godotenv.Load()

	opts := parseFlags()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(envOrDefault("MONGO_URI", "mongodb://localhost:27017"))
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		log.Fatalf("MongoDB 接続に失敗しました: %v", err)
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	db := client.Database(envOrDefault("MONGO_DB", "formflow"))
	campaigns := db.Collection(envOrDefault("CAMPAIGN_COLLECTION", "campaigns"))
	submissions := db.Collection(envOrDefault("SUBMISSION_COLLECTION", "submissions"))

	if opts.dropCollections {
		if err := campaigns.Drop(ctx); err != nil {
			log.Fatalf("campaigns コレクションの削除に失敗: %v", err)
		}
		if err := submissions.Drop(ctx); err != nil {
			log.Fatalf("submissions コレクションの削除に失敗: %v", err)
		}
	}

	rng := rand.New(rand.NewSource(opts.randomSeed))
	now := time.Now().UTC()

	for i := 0; i < opts.campaignCount; i++ {
		campaignID := uuid.NewString()
		pin := fmt.Sprintf("%06d", rng.Intn(1000000))
		createdAt := now.Add(-time.Duration(rng.Intn(72)) * time.Hour)

		fields := make([]bson.M, 0, len(sampleHeaders))
		for _, header := range sampleHeaders {
			fields = append(fields, bson.M{
				"id":             slugify(header),
				"label":          header,
				"type":           "Text",
				"required":       header == "氏名",
				"originalHeader": header,
			})
		}

		submissionDocs := make([]interface{}, 0, opts.participantCount)
		submitted := 0
		for j := 0; j < opts.participantCount; j++ {
			participantID := fmt.Sprintf("EMP%04d", j+1)
			doc := bson.M{
				"_id":          campaignID + "_" + participantID,
				"campaignId":   campaignID,
				"campaignName": fmt.Sprintf("社員情報確認キャンペーン %d", i+1),
				"data": bson.M{
					"社員番号":  participantID,
					"氏名":    sampleNames[j%len(sampleNames)],
					"Email": fmt.Sprintf("emp%04d@example.co.jp", j+1),
					"部署":    "",
					"緊急連絡先": "",
				},
				"status": "Pending",
			}
			// 一部を提出済みにして集計グラフに起伏を作る。
			if rng.Intn(100) < 40 {
				submittedAt := createdAt.Add(time.Duration(rng.Intn(60*60*48)) * time.Second)
				doc["status"] = "Submitted"
				doc["submittedAt"] = submittedAt
				submitted++
			}
			submissionDocs = append(submissionDocs, doc)
		}

		campaignDoc := bson.M{
			"_id":              campaignID,
			"name":             fmt.Sprintf("社員情報確認キャンペーン %d", i+1),
			"pin":              pin,
			"status":           "Active",
			"theme":            themes[i%len(themes)],
			"fields":           fields,
			"adminId":          opts.adminID,
			"description":      "人事部による年次の社員情報確認です。",
			"participantCount": opts.participantCount,
			"submissionCount":  submitted,
			"createdAt":        createdAt,
		}

		if _, err := campaigns.InsertOne(ctx, campaignDoc); err != nil {
			log.Fatalf("キャンペーンの投入に失敗: %v", err)
		}
		if len(submissionDocs) > 0 {
			if _, err := submissions.InsertMany(ctx, submissionDocs); err != nil {
				log.Fatalf("回答の投入に失敗: %v", err)
			}
		}

		log.Printf("campaign seeded: id=%s pin=%s participants=%d submitted=%d", campaignID, pin, opts.participantCount, submitted)
	}
}

func parseFlags() seedOptions {
	opts := seedOptions{}
	flag.IntVar(&opts.campaignCount, "campaigns", 2, "number of campaigns to create")
	flag.IntVar(&opts.participantCount, "participants", 20, "participants per campaign")
	flag.BoolVar(&opts.dropCollections, "drop", false, "drop collections before seeding")
	flag.StringVar(&opts.adminID, "admin", "seed-admin", "owner admin id")
	flag.Int64Var(&opts.randomSeed, "seed", time.Now().UnixNano(), "random seed")
	flag.Parse()
	return opts
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// slugify はサーバー本体と同じ規則でフォーム入力キーを導出する。
func slugify(header string) string {
	out := make([]rune, 0, len(header))
	for _, r := range header {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			out = append(out, r)
		case r >= 'A' && r <= 'Z':
			out = append(out, r+('a'-'A'))
		default:
			out = append(out, '_')
		}
	}
	return string(out)
}
