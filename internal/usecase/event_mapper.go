package usecase

import "strings"

// Etapa do CRM (maiúscula) -> nome do evento na plataforma de anúncios.
var crmStageToEvent = map[string]string{
	"NOVOS":           "Lead",
	"ATENDEU":         "Atendeu",
	"OPORTUNIDADE":    "Oportunidade",
	"AVANÇADO":        "Avançado",
	"VÍDEO":           "Vídeo",
	"VENCEMOS":        "Vencemos",
	"QUER EMPREGO":    "Desqualificado",
	"QUER EMPRESTIMO": "Não Qualificado",
}

// MapStageToEvent traduz a etapa do CRM para o evento da plataforma.
// Etapa desconhecida volta como veio, para que etapas novas no CRM continuem sendo enviadas.
func MapStageToEvent(stage string) string {
	if event, ok := crmStageToEvent[strings.ToUpper(stage)]; ok {
		return event
	}
	return stage
}

var knownEvents = func() map[string]bool {
	m := make(map[string]bool, len(crmStageToEvent))
	for _, event := range crmStageToEvent {
		m[event] = true
	}
	return m
}()

// EventMetricLabel limita o rótulo de métrica aos eventos mapeados.
// Etapa livre do CRM vira "other" para não criar séries novas a cada nome.
func EventMetricLabel(eventName string) string {
	if eventName == "" || knownEvents[eventName] {
		return eventName
	}
	return "other"
}
