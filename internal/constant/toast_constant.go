package constant

// Toast copy shown by the widget and returned by the lead endpoints.
const (
	ToastChatStartedTitle       = "Chat Started"
	ToastChatStartedDescription = "You're now connected to our support team."
	ToastChatEndedTitle         = "Chat Ended"
	ToastChatEndedDescription   = "Thank you for contacting us. Have a great day!"
	ToastErrorTitle             = "Error"
	ToastStartFailedDescription = "Could not start chat session. Please try again."
	ToastSendFailedDescription  = "Could not send message. Please try again."
	ToastEndFailedDescription   = "Could not end chat session. Please try again."

	ToastContactSentTitle       = "Message Sent Successfully!"
	ToastContactSentDescription = "Thank you for your interest. We'll get back to you within 24 hours."
	ToastContactFailed          = "There was an error sending your message. Please try again."

	ToastConsultationTitle         = "Consultation Requested!"
	ToastConsultationDescription   = "We'll contact you within 24 hours to schedule your consultation."
	ToastConsultationFailed        = "There was an error scheduling your consultation. Please try again."
	ToastAuthRequiredTitle         = "Authentication Required"
	ToastAuthRequiredDescription   = "Please create an account to schedule a consultation."
	ToastServiceRequestTitle       = "Service Request Submitted!"
	ToastServiceRequestDescription = "We'll review your request and get back to you with a custom quote."
	ToastServiceRequestFailed      = "There was an error submitting your request. Please try again."

	ToastCallTitle       = "Call Initiated"
	ToastCallDescription = "Opening your phone dialer..."
	ToastCallFailed      = "There was an error initiating the call. Please try dialing manually."

	ToastVariantDefault     = "default"
	ToastVariantDestructive = "destructive"
)
