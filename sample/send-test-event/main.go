package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/xavierca1/ligue-conversions/internal/entity"
	"github.com/xavierca1/ligue-conversions/internal/infra/integration/meta"
	"github.com/xavierca1/ligue-conversions/internal/usecase"
)

// Envia um evento de teste para a aba "Eventos de teste" do Gerenciador de Eventos.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  Aviso: arquivo .env não encontrado, usando variáveis de ambiente do sistema")
	}

	if os.Getenv("PIXEL_ID") == "" || os.Getenv("FB_ACCESS_TOKEN") == "" {
		log.Fatal("❌ PIXEL_ID e FB_ACCESS_TOKEN devem estar configurados no .env")
	}
	testCode := os.Getenv("META_TEST_EVENT_CODE")
	if testCode == "" {
		log.Fatal("❌ META_TEST_EVENT_CODE deve estar configurado (senão o evento vai para produção)")
	}

	client := meta.NewClient(meta.Options{
		PixelID:       os.Getenv("PIXEL_ID"),
		AccessToken:   os.Getenv("FB_ACCESS_TOKEN"),
		TestEventCode: testCode,
	})

	created := time.Now().Add(-2 * time.Hour).Unix()
	lead := &entity.Lead{
		ExternalLeadID: "teste-" + time.Now().Format("20060102150405"),
		CreatedTime:    &created,
		Email:          "joao.teste@email.com",
		Phone:          "556199767638",
		FirstName:      "Joao",
		LastName:       "Teste da Silva",
		City:           "Brasília",
		Region:         "DF",
		CampaignID:     "123",
		LeadStatus:     "NOVOS",
	}

	eventName := usecase.MapStageToEvent(lead.LeadStatus)
	event := usecase.NewPayloadBuilder().Build(lead, eventName)

	fmt.Printf("🔄 Enviando evento '%s' (lead %s)...\n", event.EventName, lead.ExternalLeadID)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	ack, err := client.SendEvent(ctx, event)
	if err != nil {
		log.Fatalf("Erro ao enviar evento: %v", err)
	}

	fmt.Printf("Evento recebido! events_received=%d fbtrace_id=%s\n", ack.EventsReceived, ack.FBTraceID)
}
