// seed carga bodegas y un catálogo de productos en la base configurada e imprime un token de desarrollo.
//
// Uso: go run ./cmd/seed -catalog productos.csv [-latin1] -warehouses "Principal,Sucursal" [-token]
//
// El CSV lleva cabecera sku,name,uom,min_stock_level,initial_stock. Productos con SKU ya existente se omiten.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/jhoicas/stockmaster-api/internal/application/dto"
	"github.com/jhoicas/stockmaster-api/internal/application/usecase"
	"github.com/jhoicas/stockmaster-api/internal/domain"
	"github.com/jhoicas/stockmaster-api/internal/infrastructure/postgres"
	"github.com/jhoicas/stockmaster-api/pkg/config"
	"github.com/jhoicas/stockmaster-api/pkg/jwt"
	"github.com/jhoicas/stockmaster-api/pkg/logger"
)

func main() {
	catalogPath := flag.String("catalog", "", "CSV de productos")
	latin1 := flag.Bool("latin1", false, "el CSV viene en ISO-8859-1")
	warehouses := flag.String("warehouses", "", "nombres de bodegas separados por coma")
	token := flag.Bool("token", false, "imprimir un token admin de desarrollo")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, Service: "seed"})

	if *token {
		tok, err := jwt.Generate(cfg.JWT.Secret, "seed-admin", jwt.RoleAdmin, cfg.JWT.Issuer, cfg.JWT.Expiration)
		if err != nil {
			log.Fatal().Err(err).Msg("generar token")
		}
		fmt.Println(tok)
	}
	if *catalogPath == "" && *warehouses == "" {
		return
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	warehouseUC := usecase.NewWarehouseUseCase(postgres.NewWarehouseRepository(pool))
	productUC := usecase.NewProductUseCase(postgres.NewProductRepository(pool))

	for _, name := range strings.Split(*warehouses, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		wh, err := warehouseUC.Create(ctx, dto.CreateWarehouseRequest{Name: name})
		if err != nil {
			log.Fatal().Err(err).Str("name", name).Msg("crear bodega")
		}
		log.Info().Str("id", wh.ID).Str("name", wh.Name).Msg("bodega creada")
	}

	if *catalogPath == "" {
		return
	}
	f, err := os.Open(*catalogPath)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir catálogo")
	}
	defer f.Close()

	items, err := readCatalog(f, *latin1)
	if err != nil {
		log.Fatal().Err(err).Msg("leer catálogo")
	}
	created, skipped := 0, 0
	for _, in := range items {
		_, err := productUC.Create(ctx, in)
		switch {
		case errors.Is(err, domain.ErrDuplicate):
			skipped++
		case err != nil:
			log.Fatal().Err(err).Str("sku", in.SKU).Msg("crear producto")
		default:
			created++
		}
	}
	log.Info().Int("created", created).Int("skipped", skipped).Msg("catálogo cargado")
}
