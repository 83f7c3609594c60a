package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	registerEnglish(language.AmericanEnglish)
	registerPortuguese(language.BrazilianPortuguese)
}

func registerEnglish(lang language.Tag) {
	message.SetString(lang, "app.name", "Tenant Notes")
	message.SetString(lang, "loading.label", "Loading...")
	message.SetString(lang, "loading.checking", "Checking authentication...")
	message.SetString(lang, "role.admin", "Admin")
	message.SetString(lang, "role.member", "Member")

	// Login page
	message.SetString(lang, "login.title", "Login")
	message.SetString(lang, "login.email", "Email")
	message.SetString(lang, "login.email_placeholder", "Enter your email")
	message.SetString(lang, "login.password", "Password")
	message.SetString(lang, "login.password_placeholder", "Enter your password")
	message.SetString(lang, "login.submit", "Login")
	message.SetString(lang, "login.submitting", "Logging in...")
	message.SetString(lang, "login.test_accounts", "Test Accounts:")
	message.SetString(lang, "login.error.failed", "Login failed")
	message.SetString(lang, "login.error.required", "Email and password are required")

	// Notes page
	message.SetString(lang, "notes.title", "Notes")
	message.SetString(lang, "notes.tenant_fallback", "My Tenant")
	message.SetString(lang, "notes.logged_in_as", "Logged in as %s")
	message.SetString(lang, "notes.plan_badge", "Plan: %s")
	message.SetString(lang, "notes.role_badge", "Role: %s")
	message.SetString(lang, "notes.limit_reached", "You've reached the free plan limit of %d notes.")
	message.SetString(lang, "notes.upgrade", "Upgrade to Pro")
	message.SetString(lang, "notes.upgrading", "Upgrading...")
	message.SetString(lang, "notes.contact_admin", "Contact your admin to upgrade")
	message.SetString(lang, "notes.admin_actions", "Admin Actions")
	message.SetString(lang, "notes.invite_user", "Invite User")
	message.SetString(lang, "notes.inviting", "Inviting...")
	message.SetString(lang, "notes.invite.email", "Email Address")
	message.SetString(lang, "notes.invite.email_placeholder", "Enter user's email")
	message.SetString(lang, "notes.invite.role", "Role")
	message.SetString(lang, "notes.invite.cancel", "Cancel")
	message.SetString(lang, "notes.create.heading", "Create a Note")
	message.SetString(lang, "notes.create.title_placeholder", "Note title")
	message.SetString(lang, "notes.create.content_placeholder", "Note content")
	message.SetString(lang, "notes.create.submit", "Add Note")
	message.SetString(lang, "notes.empty", "No notes yet.")
	message.SetString(lang, "notes.empty.can_create", "Create your first note above!")
	message.SetString(lang, "notes.empty.upgrade", "Upgrade to create more notes.")
	message.SetString(lang, "notes.delete", "Delete")
	message.SetString(lang, "notes.logout", "Logout")

	// Notices
	message.SetString(lang, "notes.error.create", "Error creating note")
	message.SetString(lang, "notes.error.delete", "Error deleting note")
	message.SetString(lang, "notes.error.upgrade", "Upgrade failed")
	message.SetString(lang, "notes.error.invite", "Invitation failed")
	message.SetString(lang, "notes.notice.upgraded", "Upgrade successful! Your account has been upgraded to Pro.")
	message.SetString(lang, "notes.notice.invited", "User invited successfully!")

	// Errors
	message.SetString(lang, "error.title", "Something went wrong")
	message.SetString(lang, "error.not_found", "Page not found")
	message.SetString(lang, "error.unavailable", "The notes service is unavailable. Try again shortly.")
	message.SetString(lang, "error.back", "Back to notes")
}

func registerPortuguese(lang language.Tag) {
	message.SetString(lang, "app.name", "Tenant Notes")
	message.SetString(lang, "loading.label", "Carregando...")
	message.SetString(lang, "loading.checking", "Verificando autenticação...")
	message.SetString(lang, "role.admin", "Administrador")
	message.SetString(lang, "role.member", "Membro")

	// Login page
	message.SetString(lang, "login.title", "Entrar")
	message.SetString(lang, "login.email", "Email")
	message.SetString(lang, "login.email_placeholder", "Digite seu email")
	message.SetString(lang, "login.password", "Senha")
	message.SetString(lang, "login.password_placeholder", "Digite sua senha")
	message.SetString(lang, "login.submit", "Entrar")
	message.SetString(lang, "login.submitting", "Entrando...")
	message.SetString(lang, "login.test_accounts", "Contas de teste:")
	message.SetString(lang, "login.error.failed", "Falha no login")
	message.SetString(lang, "login.error.required", "Email e senha são obrigatórios")

	// Notes page
	message.SetString(lang, "notes.title", "Notas")
	message.SetString(lang, "notes.tenant_fallback", "Minha organização")
	message.SetString(lang, "notes.logged_in_as", "Conectado como %s")
	message.SetString(lang, "notes.plan_badge", "Plano: %s")
	message.SetString(lang, "notes.role_badge", "Papel: %s")
	message.SetString(lang, "notes.limit_reached", "Você atingiu o limite do plano gratuito de %d notas.")
	message.SetString(lang, "notes.upgrade", "Atualizar para Pro")
	message.SetString(lang, "notes.upgrading", "Atualizando...")
	message.SetString(lang, "notes.contact_admin", "Fale com o administrador para atualizar")
	message.SetString(lang, "notes.admin_actions", "Ações de administrador")
	message.SetString(lang, "notes.invite_user", "Convidar usuário")
	message.SetString(lang, "notes.inviting", "Convidando...")
	message.SetString(lang, "notes.invite.email", "Endereço de email")
	message.SetString(lang, "notes.invite.email_placeholder", "Digite o email do usuário")
	message.SetString(lang, "notes.invite.role", "Papel")
	message.SetString(lang, "notes.invite.cancel", "Cancelar")
	message.SetString(lang, "notes.create.heading", "Criar uma nota")
	message.SetString(lang, "notes.create.title_placeholder", "Título da nota")
	message.SetString(lang, "notes.create.content_placeholder", "Conteúdo da nota")
	message.SetString(lang, "notes.create.submit", "Adicionar nota")
	message.SetString(lang, "notes.empty", "Nenhuma nota ainda.")
	message.SetString(lang, "notes.empty.can_create", "Crie sua primeira nota acima!")
	message.SetString(lang, "notes.empty.upgrade", "Atualize para criar mais notas.")
	message.SetString(lang, "notes.delete", "Excluir")
	message.SetString(lang, "notes.logout", "Sair")

	// Notices
	message.SetString(lang, "notes.error.create", "Erro ao criar nota")
	message.SetString(lang, "notes.error.delete", "Erro ao excluir nota")
	message.SetString(lang, "notes.error.upgrade", "Falha na atualização")
	message.SetString(lang, "notes.error.invite", "Falha no convite")
	message.SetString(lang, "notes.notice.upgraded", "Atualização concluída! Sua conta agora é Pro.")
	message.SetString(lang, "notes.notice.invited", "Usuário convidado com sucesso!")

	// Errors
	message.SetString(lang, "error.title", "Algo deu errado")
	message.SetString(lang, "error.not_found", "Página não encontrada")
	message.SetString(lang, "error.unavailable", "O serviço de notas está indisponível. Tente novamente em instantes.")
	message.SetString(lang, "error.back", "Voltar às notas")
}
