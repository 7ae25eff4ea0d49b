package payment

import "strings"

const (
	MethodPixCopyPaste = "PIX_COPIA_E_COLA"
	MethodPixQR        = "PIX_QR_CODE"
	MethodPixLink      = "PIX_LINK"
)

var InstructionMap = map[string][]string{
	MethodPixCopyPaste: {
		"Abra o aplicativo do seu banco",
		"Escolha pagar via Pix e selecione Pix Copia e Cola",
		"Cole o código {{payable_code}}",
		"Confira o valor de {{amount}} e o nome do recebedor",
		"Confirme o pagamento e guarde o comprovante",
	},

	MethodPixQR: {
		"Abra o aplicativo do seu banco",
		"Escolha pagar via Pix com QR Code",
		"Aponte a câmera para o código exibido na tela",
		"Confira o valor de {{amount}} antes de confirmar",
		"Confirme o pagamento e guarde o comprovante",
	},

	MethodPixLink: {
		"Toque no link de pagamento",
		"Você será redirecionado para o ambiente do banco",
		"Confira o valor de {{amount}}",
		"Confirme o pagamento e guarde o comprovante",
	},
}

// InstructionsFor renders the step list for a payment method with the
// amount and payable code filled in.
func InstructionsFor(method, amount, payableCode string) []string {
	steps, ok := InstructionMap[method]
	if !ok {
		return nil
	}

	out := make([]string, 0, len(steps))
	for _, step := range steps {
		step = strings.ReplaceAll(step, "{{amount}}", amount)
		step = strings.ReplaceAll(step, "{{payable_code}}", payableCode)
		out = append(out, step)
	}
	return out
}
