// @title 国語CBTアプリ API
// @version 1.0
// @description 読解学習・CBT演習プラットフォームのバックエンドサーバー。

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"flag"
	"log"

	"github.com/Koto-ptts/japanese-cbt-app/internal/app"
	"github.com/Koto-ptts/japanese-cbt-app/internal/config"
	"github.com/Koto-ptts/japanese-cbt-app/pkg/logger"
)

func main() {
	// コマンドライン引数
	migrateOnly := flag.Bool("migrate-only", false, "データベース移行のみ実行して終了する")
	migrate := flag.Bool("migrate", false, "起動時に強制的にデータベース移行を実行する（release モードでも）")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	cfg.ForceMigrate = *migrate || *migrateOnly
	cfg.MigrateOnly = *migrateOnly

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	// 移行完了後はそのまま終了する
	if *migrateOnly {
		log.Println("データベース移行が完了しました。終了します")
		return
	}

	application.Run()
}
