package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"

	"github.com/xavierca1/ligue-conversions/internal/config"
	"github.com/xavierca1/ligue-conversions/internal/infra/database"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.NewDBConnection(cfg.DatabaseURL, database.PoolConfig{MaxOpenConns: 1})
	if err != nil {
		log.Fatalf("Erro ao conectar no banco: %v", err)
	}
	defer db.Close()

	m, err := database.NewMigrator(db)
	if err != nil {
		log.Fatal(err)
	}

	switch command {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatalf("Erro ao executar as migrações: %v", err)
		} else if errors.Is(err, migrate.ErrNoChange) {
			log.Println("Nenhuma mudança: banco já está atualizado")
		} else {
			log.Println("Migrações executadas com sucesso")
		}

	case "down":
		if err := m.Steps(-1); err != nil {
			log.Fatalf("Erro ao reverter a última migração: %v", err)
		}
		log.Println("Última migração revertida")

	case "goto":
		if len(os.Args) < 3 {
			log.Fatalf("Informe o número da versão")
		}
		version, err := strconv.ParseUint(os.Args[2], 10, 64)
		if err != nil {
			log.Fatalf("Versão inválida: %v", err)
		}
		if err := m.Migrate(uint(version)); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatalf("Erro ao migrar para a versão %d: %v", version, err)
		}
		log.Printf("Banco na versão %d", version)

	case "status":
		version, dirty, err := m.Version()
		if err != nil {
			if errors.Is(err, migrate.ErrNilVersion) {
				log.Println("Nenhuma migração executada ainda")
				return
			}
			log.Fatalf("Erro ao ler versão: %v", err)
		}
		dirtyStatus := ""
		if dirty {
			dirtyStatus = " (dirty)"
		}
		log.Printf("Versão atual: %d%s", version, dirtyStatus)

	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Uso: go run ./cmd/migrate [comando]")
	fmt.Println("Comandos:")
	fmt.Println("  up     - aplica todas as migrações pendentes")
	fmt.Println("  down   - reverte a última migração")
	fmt.Println("  goto N - migra para a versão N")
	fmt.Println("  status - mostra a versão atual")
}
