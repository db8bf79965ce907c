package engine

// Button labels. Message texts matching these labels route to the same
// handlers as the inline callbacks, so they must stay in sync with the
// dispatch table in engine.go.
const (
	btnCategories    = "Категории врачей"
	btnDoctorsRating = "Рейтинг врачей"
	btnClinicsRating = "Рейтинг клиник"
	btnMyReviews     = "Мои отзывы"
	btnSupport       = "Тех. поддержка"

	btnConsentAccept = "Согласен"
	btnConsentRefuse = "Отказываюсь"
	btnSharePhone    = "Отправить номер телефона"
	btnSkip          = "Пропустить"
	btnConfirm       = "Подтвердить"
	btnEdit          = "Изменить"

	btnCancel           = "Отмена"
	btnToMenu           = "В главное меню"
	btnBackToCategories = "К категориям"
	btnBackToDoctors    = "К списку врачей"
	btnBackToClinics    = "К списку клиник"
	btnLeaveReview      = "Оставить отзыв"
	btnViewReviews      = "Посмотреть отзывы"
	btnPrevPage         = "⬅️ Назад"
	btnNextPage         = "Далее ➡️"
)

const (
	msgWelcomeBack = "С возвращением! Выберите раздел в меню ниже."
	msgMainMenu    = "Главное меню. Выберите раздел."

	msgConsent = "Добро пожаловать в сервис рейтинга врачей и клиник!\n\n" +
		"Для работы с ботом необходимо согласие на обработку персональных данных."

	msgConsentRefused = "Без согласия на обработку персональных данных регистрация невозможна.\n" +
		"Если передумаете, отправьте /start."

	msgAskFullName       = "Введите ваше ФИО:"
	msgFullNameTooShort  = "ФИО слишком короткое. Введите не менее 3 символов."
	msgChooseCity        = "Выберите ваш город:"
	msgTypeCity          = "Введите название вашего города:"
	msgCityTooShort      = "Название города слишком короткое. Введите не менее 2 символов."
	msgAskPhone          = "Отправьте ваш номер телефона или нажмите «Пропустить»."
	msgRegistered        = "Регистрация завершена! Добро пожаловать!"
	msgAlreadyRegistered = "Вы уже зарегистрированы."

	msgChooseCategory    = "Выберите категорию врачей:"
	msgNoCategories      = "Категории пока не добавлены."
	msgDoctorsInCategory = "Врачи выбранной категории:"
	msgNoDoctors         = "В этой категории пока нет врачей."
	msgNoClinics         = "Клиники пока не добавлены."
	msgNoRatedDoctors    = "Пока ни у одного врача нет отзывов."
	msgNoRatedClinics    = "Пока ни у одной клиники нет отзывов."
	msgChooseClinic      = "Рейтинг клиник. Выберите клинику:"
	msgNoReviews         = "Отзывов пока нет."
	msgNoMyReviews       = "Вы ещё не оставляли отзывов."

	msgNeedRegistration = "Сначала зарегистрируйтесь через /start."
	msgAlreadyReviewed  = "Вы уже оставляли отзыв этому врачу."
	msgAskRating        = "Оцените врача по шкале от 1 до 5:"
	msgAskReviewText    = "Напишите текст отзыва (от 10 до 1000 символов):"
	msgReviewTextBounds = "Текст отзыва должен быть от 10 до 1000 символов. Попробуйте ещё раз."
	msgReviewSaved      = "Спасибо! Ваш отзыв сохранён."
	msgReviewCancelled  = "Создание отзыва отменено."

	msgAskSubject      = "Опишите тему обращения (от 3 до 100 символов):"
	msgSubjectBounds   = "Тема должна быть от 3 до 100 символов. Попробуйте ещё раз."
	msgAskMessage      = "Опишите вашу проблему подробнее (от 10 до 2000 символов):"
	msgMessageBounds   = "Сообщение должно быть от 10 до 2000 символов. Попробуйте ещё раз."
	msgTicketCreated   = "Обращение принято! Мы свяжемся с вами в ближайшее время."
	msgActionCancelled = "Действие отменено."

	msgThrottled         = "Пожалуйста, подождите немного перед следующим действием."
	msgThrottledCallback = "Подождите немного"
	msgGenericError      = "Произошла ошибка. Попробуйте позже."
	msgUnknownCommand    = "Не понимаю. Используйте кнопки меню или отправьте /start."
)
